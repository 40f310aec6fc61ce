package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/covenant/covenant-go/dsl"
	"github.com/covenant/covenant-go/loader"
)

type checkResult struct {
	File     string `json:"file"`
	Contract string `json:"contract,omitempty"`
	Error    string `json:"error,omitempty"`
}

func newCheckCommand() *Command {
	checkCmd := &Command{
		Name:        "check",
		Description: "Parse and validate contract set files",
		FlagSet:     flag.NewFlagSet("check", flag.ExitOnError),
	}

	format := checkCmd.FlagSet.String("format", "text", "Output format: text or json")

	checkCmd.Run = func() error {
		files := checkCmd.FlagSet.Args()
		if len(files) < 1 {
			return fmt.Errorf("no input files specified")
		}

		var results []checkResult
		failed := false
		for _, file := range files {
			set, err := loader.LoadFile(file)
			if err != nil {
				failed = true
				results = append(results, checkResult{File: file, Error: err.Error()})
				continue
			}
			for name := range set {
				results = append(results, checkResult{File: file, Contract: name})
			}
		}
		sort.Slice(results, func(i, j int) bool {
			if results[i].File != results[j].File {
				return results[i].File < results[j].File
			}
			return results[i].Contract < results[j].Contract
		})

		switch strings.ToLower(*format) {
		case "json":
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(results); err != nil {
				return err
			}
		default:
			for _, r := range results {
				if r.Error != "" {
					fmt.Printf("%s: FAIL: %s\n", r.File, r.Error)
				} else {
					fmt.Printf("%s: %s ok\n", r.File, r.Contract)
				}
			}
		}

		if failed {
			return fmt.Errorf("contract check failed")
		}
		return nil
	}

	return checkCmd
}

func newRenderCommand() *Command {
	renderCmd := &Command{
		Name:        "render",
		Description: "Print the normalized form of a signature",
		FlagSet:     flag.NewFlagSet("render", flag.ExitOnError),
	}

	renderCmd.Run = func() error {
		sigs := renderCmd.FlagSet.Args()
		if len(sigs) < 1 {
			return fmt.Errorf("no signatures specified")
		}
		for _, sig := range sigs {
			c, err := dsl.Parse(sig)
			if err != nil {
				return err
			}
			fmt.Println(c.String())
		}
		return nil
	}

	return renderCmd
}
