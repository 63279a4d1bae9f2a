// Copyright 2025 Poiesic Systems
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

package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	corpusFlags := []cli.Flag{
		&cli.StringFlag{
			Name:    "file",
			Aliases: []string{"f"},
			Usage:   "Corpus file, one record per line",
		},
		&cli.StringFlag{
			Name:    "db",
			Aliases: []string{"d"},
			Usage:   "Path to BadgerDB database directory holding a loaded corpus",
		},
		&cli.IntFlag{
			Name:  "max-records",
			Usage: "Read at most this many lines from --file",
		},
	}

	return &cli.App{
		Name:  "fuzzscan",
		Usage: "Fuzzy term search over line-oriented text corpora",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "TOML configuration file",
				EnvVars: []string{"FUZZSCAN_CONFIG"},
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:   "load",
				Usage:  "Load a corpus file into a database",
				Action: loadCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "Corpus file, one record per line",
					},
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to BadgerDB database directory",
					},
					&cli.IntFlag{
						Name:  "max-records",
						Usage: "Read at most this many lines",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of records written per transaction",
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Number of concurrent batch writers",
					},
					&cli.BoolFlag{
						Name:  "reset",
						Usage: "Remove previously loaded records before loading",
					},
					&cli.BoolFlag{
						Name:  "quiet",
						Usage: "Do not report progress",
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Find records containing a word close to TERM",
				ArgsUsage: "TERM",
				Action:    searchCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:    "metric",
						Aliases: []string{"m"},
						Usage:   "Distance metric (levenshtein, hamming, bruteforce)",
					},
					&cli.IntFlag{
						Name:    "threshold",
						Aliases: []string{"t"},
						Usage:   "Maximum distance for a word to match",
					},
					&cli.IntFlag{
						Name:  "show",
						Usage: "Print at most this many matching records",
						Value: 10,
					},
				}, corpusFlags...),
			},
			{
				Name:      "bench",
				Usage:     "Time every metric searching for TERM",
				ArgsUsage: "TERM",
				Action:    benchCommand,
				Flags: append([]cli.Flag{
					&cli.IntFlag{
						Name:  "threshold",
						Usage: "Base distance threshold",
					},
					&cli.IntFlag{
						Name:  "expanded-threshold",
						Usage: "Expanded distance threshold",
					},
					&cli.IntFlag{
						Name:  "show",
						Usage: "Print at most this many matches per pass",
					},
				}, corpusFlags...),
			},
			{
				Name:      "compare",
				Usage:     "Print the distance between two words under every metric",
				ArgsUsage: "WORD TERM",
				Action:    compareCommand,
			},
			{
				Name:   "config",
				Usage:  "Print the effective configuration as TOML",
				Action: configCommand,
			},
		},
	}
}
