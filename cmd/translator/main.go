// This file is part of processor-modeling - https://github.com/slvptr/processor-modeling
//
// Copyright 2023 The processor-modeling Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command translator assembles a symbolic source file into a machine-code
// artifact:
//
//	translator <source_file> <target_file>
//
// On a parse or assembly error the positions are reported and no artifact
// is written.
package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/slvptr/processor-modeling/asm"
)

func main() {
	root := &cobra.Command{
		Use:          "translator <source_file> <target_file>",
		Short:        "Assemble symbolic sources into a machine-code artifact",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return translate(args[0], args[1])
		},
	}
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func translate(sourceFile, targetFile string) (err error) {
	src, err := os.Open(sourceFile)
	if err != nil {
		return errors.Wrap(err, "open source failed")
	}
	defer src.Close()

	prog, err := asm.Assemble(sourceFile, src)
	if err != nil {
		return err
	}

	f, err := os.Create(targetFile)
	if err != nil {
		return errors.Wrap(err, "create target failed")
	}
	defer func() {
		f.Close()
		// delete partial artifact on error
		if err != nil {
			os.Remove(targetFile)
		}
	}()
	return prog.Write(f)
}
