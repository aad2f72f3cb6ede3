// Command rv32i loads a flat RV32I program image and runs it to
// completion, printing a fault diagnostic and exiting non-zero if the
// run ends in a fault rather than an exit supervisor call.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"rv32i/internal/config"
	"rv32i/pkg/vm"
)

func main() {
	log.SetFlags(0)

	var (
		debug      bool
		configPath string
		memorySize uint32
	)

	rootCmd := &cobra.Command{
		Use:   "rv32i <image>",
		Short: "Run a flat RV32I program image to completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("debug") {
				cfg.Execution.Debug = debug
			}
			if cmd.Flags().Changed("memory-size") {
				cfg.Execution.MemorySize = memorySize
			}

			program, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read program image: %w", err)
			}
			if uint32(len(program)) > cfg.Execution.MemorySize {
				return fmt.Errorf("program image (%d bytes) exceeds memory size (%d bytes)", len(program), cfg.Execution.MemorySize)
			}

			cpu := vm.NewCPU(cfg.Execution.MemorySize)
			cpu.Debug = cfg.Execution.Debug
			cpu.LoadProgram(program)

			code, err := cpu.Run()
			if err != nil {
				if errors.Is(err, vm.ErrEndOfInstructions) {
					fmt.Fprintln(os.Stderr, "rv32i: ran off the end of the program without an exit call")
					os.Exit(1)
				}
				return fmt.Errorf("rv32i: faulted: %w", err)
			}
			os.Exit(int(code))
			return nil
		},
	}

	rootCmd.Flags().BoolVarP(&debug, "debug", "d", false, "dump CPU state after every cycle")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a TOML config file (default: platform config dir)")
	rootCmd.Flags().Uint32Var(&memorySize, "memory-size", 0, "override the configured memory size, in bytes")

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFrom(path)
}
