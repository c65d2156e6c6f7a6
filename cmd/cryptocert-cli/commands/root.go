// Copyright (C) 2025 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:          "cryptocert-cli",
	Short:        "Interact with a running cryptocert instance",
	SilenceUsage: true,
	Long: `The cryptocert cli submits extractor findings for assessment and
verifies issued certificates. Configuration can be provided via flags
or environment variables (prefix CRYPTOCERT_).`,
}

func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().String("apiUrl", "http://localhost:8080", "base url of the cryptocert api")
	viper.BindPFlag("apiUrl", rootCmd.PersistentFlags().Lookup("apiUrl")) // nolint:errcheck

	viper.SetEnvPrefix("CRYPTOCERT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(NewSubmitCommand())
	rootCmd.AddCommand(NewVerifyCommand())
}
