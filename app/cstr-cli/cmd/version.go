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
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Version information, the value is set by the build script
var (
	Version   = "v0.1.0"
	GitCommit string
	GitBranch string
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the cstr-cli version",
	Run: func(cmd *cobra.Command, args []string) {
		const format = `cstr version info:
%s: %s
git: %s %s
os: %s
arch: %s
`
		fmt.Fprintf(cmd.OutOrStdout(), format,
			CStrCli, Version, GitBranch, GitCommit, runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
