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
	"bufio"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/docker/go-units"
	"github.com/openGemini/cstr/lib/cmem"
	"github.com/openGemini/cstr/lib/cstrcache"
	"github.com/openGemini/cstr/lib/errno"
	"github.com/openGemini/cstr/lib/logger"
	"github.com/openGemini/cstr/lib/memory"
	"github.com/openGemini/cstr/lib/util"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type internFlags struct {
	Path     string
	Capacity int
}

var iFlags = internFlags{}

func init() {
	rootCmd.AddCommand(internCmd)
	internCmd.Flags().StringVar(&iFlags.Path, "path", "", "Path to the file to read, stdin when omitted.")
	internCmd.Flags().IntVar(&iFlags.Capacity, "capacity", 0, "Cache capacity, defaults to the configured value.")
}

var internCmd = &cobra.Command{
	Use:   "intern",
	Short: "Intern input lines through the conversion cache",
	Long:  `Intern feeds every input line through the interning cache and reports hit rates and foreign allocator usage.`,
	Example: `
$ cstr-cli intern --path=series.txt --capacity=1024

$ cstr-cli intern < series.txt`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd:   true,
		DisableDescriptions: true,
		DisableNoDescFlag:   true,
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntern(cmd)
	},
}

func runIntern(cmd *cobra.Command) error {
	capacity := iFlags.Capacity
	if capacity <= 0 {
		capacity = tuning.Cache.Capacity
	}
	cache, err := cstrcache.NewCache(capacity)
	if err != nil {
		return err
	}
	defer cache.Purge()

	var in io.Reader = cmd.InOrStdin()
	if iFlags.Path != "" {
		f, err := os.Open(path.Clean(iFlags.Path))
		if err != nil {
			return errno.NewThirdParty(err, errno.ModuleCache)
		}
		defer util.MustClose(f)
		in = f
	}

	log := logger.NewLogger(errno.ModuleCache)
	lines, skipped := 0, 0
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if strings.IndexByte(line, 0) >= 0 {
			skipped++
			log.Warn("skip line with embedded terminator", zap.Int("line", lines+skipped))
			continue
		}
		cache.Get(line)
		lines++
	}
	if err := scanner.Err(); err != nil {
		return errno.NewThirdParty(err, errno.ModuleCache)
	}

	st := cache.Stats()
	var mem cmem.Stats
	cmem.ReadStats(&mem)
	total, free := memory.SysMem()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "lines: %d skipped: %d\n", lines, skipped)
	fmt.Fprintf(out, "interned: %d hits: %d misses: %d\n", st.Len, st.Hits, st.Misses)
	fmt.Fprintf(out, "arena: %s in %d objects\n",
		units.HumanSize(float64(mem.InUseBytes)), mem.InUseObjects)
	fmt.Fprintf(out, "sys: %s free of %s\n",
		units.HumanSize(float64(free)), units.HumanSize(float64(total)))
	return nil
}
