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
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/l3montree-dev/cryptocert/dtos"
)

func NewVerifyCommand() *cobra.Command {
	verifyCmd := &cobra.Command{
		Use:     "verify <certificateID>",
		Short:   "Verify an issued security certificate",
		Example: `cryptocert-cli verify 9f6f6f1e-6b18-4cd5-8f3e-1f1f3d9d2c21`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := http.Client{Timeout: 30 * time.Second}
			resp, err := client.Get(viper.GetString("apiUrl") + "/api/v1/certificates/" + args[0] + "/verify/")
			if err != nil {
				return errors.Wrap(err, "could not reach the cryptocert api")
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("verification request failed with status %d", resp.StatusCode)
			}

			var result dtos.VerificationResult
			if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
				return errors.Wrap(err, "could not decode verification response")
			}

			fmt.Printf("valid:   %t\n", result.Valid)
			fmt.Printf("reason:  %s\n", result.Reason)
			if result.Certificate != nil {
				fmt.Printf("level:   %s\n", result.Certificate.Level)
				fmt.Printf("expires: %s\n", result.Certificate.ExpiresAt.Format(time.RFC3339))
			}

			// a nonzero exit lets CI pipelines gate on certificate validity
			if !result.Valid {
				return fmt.Errorf("certificate is not valid: %s", result.Reason)
			}
			return nil
		},
	}

	return verifyCmd
}
