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
	"html"
	"os"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type SendEmailConfig struct {
	DataDir string
	From    string
	To      string
	Types   []string
	Params  []map[string]string
	DryRun  bool
	APIKey  string
	Year    int
}

var emailCmd = &cobra.Command{
	Use:   "email <address> <analysis_name...> [year]",
	Short: "Sends an email report",
	Long: `Emails one or more analyses to the specified address.
  <analysis_name> is one or more of: top-artists, top-songs, most-popular, compare, vibe.
  An optional 4-digit year can be provided at the end; year-based analyses use it.`,
	Args: cobra.MinimumNArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if viper.GetString("from") == "" {
			return fmt.Errorf("required flag(s) \"from\" not set")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		to := args[0]
		rest := args[1:]

		// Try to parse a year from the end of the args.
		year := 0
		if len(rest) > 0 {
			if y, err := parseYearArg(rest[len(rest)-1]); err == nil {
				year = y
				rest = rest[:len(rest)-1]
			}
		}

		analysisTypes := rest
		if len(analysisTypes) == 0 {
			fmt.Println("Error: No analysis types specified")
			os.Exit(1)
		}

		params, _ := cmd.Flags().GetStringArray("params")

		if len(params) > 0 && len(params) != len(analysisTypes) {
			fmt.Printf("Error: Number of --params flags (%d) must match number of reports (%d), or be 0.\n", len(params), len(analysisTypes))
			os.Exit(1)
		}

		structuredParams := make([]map[string]string, len(analysisTypes))
		for i, v := range params {
			pMap := make(map[string]string)
			if v != "" {
				pairs := strings.Split(v, ",")
				for _, pair := range pairs {
					kv := strings.SplitN(pair, "=", 2)
					if len(kv) == 2 {
						pMap[kv[0]] = kv[1]
					}
				}
			}
			structuredParams[i] = pMap
		}

		config := SendEmailConfig{
			DataDir: viper.GetString("data"),
			From:    viper.GetString("from"),
			To:      to,
			Types:   analysisTypes,
			Params:  structuredParams,
			DryRun:  viper.GetBool("dryRun"),
			APIKey:  viper.GetString("sendgrid_api_key"),
			Year:    year,
		}
		if err := sendEmail(config); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(emailCmd)

	var dryRun bool
	emailCmd.Flags().BoolVarP(&dryRun, "dry_run", "n", false, "When true, just print instead of emailing")
	viper.BindPFlag("dryRun", emailCmd.Flags().Lookup("dry_run"))

	emailCmd.Flags().StringArray("params", nil, "Parameters for reports, matched by index (e.g. --params 'n=20' or --params 'vibe=chill,seed=7')")
}

func getActionFromName(name string) (Analyser, error) {
	switch name {
	case "top-artists":
		return &TopArtistsAnalyzer{}, nil
	case "top-songs":
		return &TopSongsAnalyzer{}, nil
	case "most-popular":
		return MostPopularAnalyzer{}, nil
	case "compare":
		return &CompareAnalyzer{}, nil
	case "vibe":
		return &VibeAnalyzer{}, nil
	}
	return nil, fmt.Errorf("unknown analysis %q", name)
}

func sendEmail(config SendEmailConfig) error {
	actions := make([]Analyser, 0)
	for i, actionName := range config.Types {
		action, err := getActionFromName(actionName)
		if err != nil {
			return fmt.Errorf("Invalid analysis_name: %s", actionName)
		}

		if config.Params != nil && i < len(config.Params) {
			params := config.Params[i]
			if len(params) > 0 {
				if configurable, ok := action.(Configurable); ok {
					if err := configurable.Configure(params); err != nil {
						return fmt.Errorf("configuring %s (index %d): %w", actionName, i, err)
					}
				}
			}
		}

		actions = append(actions, action)
	}

	subject, out, err := generateEmailContent(config, actions)
	if err != nil {
		return err
	}

	if config.DryRun {
		fmt.Printf("Would have sent email: \nsubject: %s\n%s\n", subject, out)
		return nil
	}

	if config.APIKey == "" {
		return fmt.Errorf("sendgrid_api_key must be set in order to send emails")
	}

	from := mail.NewEmail("music-explorer", config.From)
	to := mail.NewEmail(config.To, config.To)
	message := mail.NewSingleEmail(from, subject, to, out, "<html><body>"+out+"</body></html>")
	client := sendgrid.NewSendClient(config.APIKey)
	if _, err := client.Send(message); err != nil {
		return fmt.Errorf("sendEmail: %w", err)
	}
	return nil
}

func generateEmailContent(config SendEmailConfig, actions []Analyser) (subject string, body string, err error) {
	if config.Year != 0 {
		subject = fmt.Sprintf("Music report: %d", config.Year)
	} else {
		subject = "Music report"
	}

	var b strings.Builder
	for _, action := range actions {
		result, err := action.GetResults(config.DataDir, config.Year)
		if err != nil {
			return "", "", fmt.Errorf("%s: %w", action.GetName(), err)
		}
		fmt.Fprintf(&b, "<h2>%s</h2>\n<pre>%s</pre>\n", action.GetName(), html.EscapeString(result.String()))
	}
	return subject, b.String(), nil
}
