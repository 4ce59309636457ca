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
	stderrors "errors"
	"net/http"
	"net/netip"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sjzar/ip2bin"
	"github.com/sjzar/ip2bin/pkg/errors"
)

var serverCmd = &cobra.Command{
	Use:          "server <db_path>",
	Short:        "Serve lookups over HTTP",
	Args:         cobra.ExactArgs(1),
	RunE:         runServer,
	SilenceUsage: true,
}

func init() {
	serverCmd.Flags().String("addr", "", "listen address")
	_ = viper.BindPFlag("addr", serverCmd.Flags().Lookup("addr"))
	viper.SetDefault("addr", ":8080")
	rootCmd.AddCommand(serverCmd)
}

func runServer(cmd *cobra.Command, args []string) error {
	if debug {
		log.SetLevel(log.DebugLevel)
	}

	db, err := ip2bin.Open(args[0])
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close()
	}()

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/api/v1/:ip", lookupHandler(db))

	addr := viper.GetString("addr")
	log.Infof("serving %s (%s) on %s", args[0], db.Family(), addr)
	return router.Run(addr)
}

func lookupHandler(db *ip2bin.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		addr, err := netip.ParseAddr(c.Param("ip"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errors.ErrInvalidIP.Error()})
			return
		}
		record, err := db.Lookup(addr)
		if err != nil {
			if stderrors.Is(err, errors.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			log.Debugf("lookup %s: %v", addr, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, record)
	}
}
