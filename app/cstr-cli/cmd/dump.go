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
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"runtime"
	"unsafe"

	"github.com/openGemini/cstr/lib/cstr"
	"github.com/openGemini/cstr/lib/errno"
	"github.com/openGemini/cstr/lib/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type dumpFlags struct {
	Path  string
	Limit int
	Lines bool
}

var dFlags = dumpFlags{}

func init() {
	rootCmd.AddCommand(dumpCmd)
	dumpCmd.Flags().StringVar(&dFlags.Path, "path", "", "Path to the file to dump, stdin when omitted.")
	dumpCmd.Flags().IntVar(&dFlags.Limit, "limit", -1, "Stop after this many segments, negative for all.")
	dumpCmd.Flags().BoolVar(&dFlags.Lines, "lines", false, "Split on newlines instead of terminator bytes.")
}

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Dump the segments of a packed multi-string",
	Long:  `Dump splits terminator separated input into segments and prints one per line, length first.`,
	Example: `
$ cstr-cli dump --path=/proc/self/environ

$ cstr-cli dump --lines --limit=10 < series.txt`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd:   true,
		DisableDescriptions: true,
		DisableNoDescFlag:   true,
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDump(cmd)
	},
}

func runDump(cmd *cobra.Command) error {
	var (
		raw []byte
		err error
	)
	if dFlags.Path == "" {
		raw, err = io.ReadAll(cmd.InOrStdin())
	} else {
		raw, err = os.ReadFile(path.Clean(dFlags.Path))
	}
	if err != nil {
		return errno.NewThirdParty(err, errno.ModuleCStr)
	}
	size := len(raw)
	if dFlags.Lines {
		raw = bytes.ReplaceAll(raw, []byte{'\n'}, []byte{0})
	}

	// two trailing terminators close the block even when the input
	// carries none
	raw = append(raw, 0, 0)

	out := cmd.OutOrStdout()
	n := cstr.WalkMultiString(unsafe.Pointer(&raw[0]), dFlags.Limit, func(v cstr.View) {
		fmt.Fprintf(out, "%4d %s\n", v.Len(), v.String())
	})
	runtime.KeepAlive(raw)

	logger.NewLogger(errno.ModuleCStr).Info("dump finished",
		zap.Int("segments", n), zap.Int("bytes", size))
	return nil
}
