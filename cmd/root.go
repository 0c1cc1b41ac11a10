/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var cfgFile string
var dataDir string
var spotifyClientID string
var spotifyClientSecret string
var spotifyRedirectURI string
var sendgridApiKey string
var fromAddress string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "music-explorer",
	Short: "Explores merged Spotify track metadata",
	Long: `Merges two track-metadata CSV datasets and answers chart, comparison,
and mood questions against the merged table.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default is $HOME/.music-explorer.yaml)")

	rootCmd.PersistentFlags().StringVarP(
		&dataDir, "data", "d", "./data", "Directory containing tracks.csv and spotify_tracks.csv")
	viper.BindPFlag("data", rootCmd.PersistentFlags().Lookup("data"))

	rootCmd.PersistentFlags().StringVar(&spotifyClientID, "spotify_client_id", "", "Spotify API client ID")
	viper.BindPFlag("spotify_client_id", rootCmd.PersistentFlags().Lookup("spotify_client_id"))

	rootCmd.PersistentFlags().StringVar(&spotifyClientSecret, "spotify_client_secret", "", "Spotify API client secret")
	viper.BindPFlag("spotify_client_secret", rootCmd.PersistentFlags().Lookup("spotify_client_secret"))

	rootCmd.PersistentFlags().StringVar(&spotifyRedirectURI, "spotify_redirect_uri", "", "Spotify OAuth redirect URI")
	viper.BindPFlag("spotify_redirect_uri", rootCmd.PersistentFlags().Lookup("spotify_redirect_uri"))

	rootCmd.PersistentFlags().StringVar(&sendgridApiKey, "sendgrid_api_key", "", "SendGrid API key")
	viper.BindPFlag("sendgrid_api_key", rootCmd.PersistentFlags().Lookup("sendgrid_api_key"))

	rootCmd.PersistentFlags().StringVar(&fromAddress, "from", "", "From email address")
	viper.BindPFlag("from", rootCmd.PersistentFlags().Lookup("from"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".music-explorer" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".music-explorer")
	}

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	// See https://github.com/spf13/viper/pull/852
	rootCmd.Flags().VisitAll(func(f *pflag.Flag) {
		if viper.IsSet(f.Name) && viper.GetString(f.Name) != "" {
			rootCmd.Flags().Set(f.Name, viper.GetString(f.Name))
		}
	})
}
