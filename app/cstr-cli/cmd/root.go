/*
Copyright 2025 Huawei Cloud Computing Technologies Co., Ltd.

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
	"os"

	"github.com/docker/go-units"
	"github.com/openGemini/cstr/lib/cmem"
	"github.com/openGemini/cstr/lib/config"
	"github.com/openGemini/cstr/lib/errno"
	"github.com/openGemini/cstr/lib/logger"
	"github.com/spf13/cobra"
)

const CStrCli = "cstr-cli"

type rootFlags struct {
	ConfigPath string
	LogLevel   string
	ArenaLimit string
}

var (
	rFlags = rootFlags{}

	tuning = config.NewTuning()

	rootCmd = &cobra.Command{
		Use:          CStrCli,
		Short:        "openGemini workbench for terminated byte sequences",
		Long:         `cstr-cli dumps and interns terminator-delimited byte sequences through the cstr library.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup()
		},
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rFlags.ConfigPath, "config", "", "Path to the tuning configuration file.")
	rootCmd.PersistentFlags().StringVar(&rFlags.LogLevel, "log-level", "", "Overrides the configured log level: debug, info, warn or error.")
	rootCmd.PersistentFlags().StringVar(&rFlags.ArenaLimit, "arena-limit", "", "Caps live foreign allocations, e.g. 64m or 1g.")
}

func setup() error {
	if err := config.Parse(tuning, rFlags.ConfigPath); err != nil {
		return err
	}
	if err := tuning.ApplyEnvOverrides(os.Getenv); err != nil {
		return err
	}
	tuning.Corrector()
	if err := tuning.Validate(); err != nil {
		return err
	}

	logger.InitLogger(*tuning.GetLogging())
	if rFlags.LogLevel != "" {
		if err := logger.SetLevel(rFlags.LogLevel); err != nil {
			return err
		}
	}

	limit := int64(tuning.Memory.Limit)
	if rFlags.ArenaLimit != "" {
		n, err := units.RAMInBytes(rFlags.ArenaLimit)
		if err != nil {
			return errno.NewThirdParty(err, errno.ModuleConfig)
		}
		limit = n
	}
	cmem.SetLimit(limit)
	return nil
}
