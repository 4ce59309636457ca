/*
 * Copyright (c) 2024 shenjunzheng@gmail.com
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package cmd

import (
	"encoding/json"
	"fmt"
	"net/netip"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sjzar/ip2bin"
	"github.com/sjzar/ip2bin/pkg/errors"
)

var debug bool

var rootCmd = &cobra.Command{
	Use:          "ip2bin <db_path> <ip_address>",
	Short:        "Query IP2Location and IP2Proxy BIN databases",
	Args:         cobra.ExactArgs(2),
	RunE:         runQuery,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// Execute runs the root command and exits non-zero on any error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func runQuery(cmd *cobra.Command, args []string) error {
	if debug {
		log.SetLevel(log.DebugLevel)
	}

	addr, err := netip.ParseAddr(args[1])
	if err != nil {
		return fmt.Errorf("%w: %s", errors.ErrInvalidIP, args[1])
	}

	db, err := ip2bin.Open(args[0])
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close()
	}()

	printInfo(db.Info())

	record, err := db.Lookup(addr)
	if err != nil {
		return err
	}

	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func printInfo(info ip2bin.Info) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Path", "Family", "Type", "Columns", "Date"})
	table.Append([]string{
		info.Path,
		info.Family,
		strconv.Itoa(int(info.Type)),
		strconv.Itoa(int(info.Columns)),
		info.Date,
	})
	table.Render()
}
