// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"
)

type metadata struct {
	connect     string
	fingerprint string
	verbose     bool
	e           io.Writer
	w           io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	app := newApp(os.Stdout, os.Stderr)

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func newApp(w io.Writer, e io.Writer) *cli.App {

	app := cli.NewApp()
	app.Name = "ledger-cli"
	app.Usage = "manage token ledgers on a ledgerd"
	app.Version = version
	app.HideVersion = true

	app.Writer = w
	app.ErrWriter = e

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:   "connect, c",
			Value:  "127.0.0.1:2130",
			Usage:  " ledgerd client_rpc `HOST:PORT`",
			EnvVar: "LEDGER_CONNECT",
		},
		cli.StringFlag{
			Name:   "fingerprint, f",
			Value:  "",
			Usage:  " expected SHA3-256 certificate `HEX` fingerprint",
			EnvVar: "LEDGER_FINGERPRINT",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "deploy",
			Usage:     "create a new token ledger",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "name, n",
					Value: "",
					Usage: "*token name `STRING`",
				},
				cli.StringFlag{
					Name:  "symbol, s",
					Value: "",
					Usage: "*token symbol `SYMBOL`",
				},
				cli.Uint64Flag{
					Name:  "supply, t",
					Value: 0,
					Usage: "*total supply `COUNT`",
				},
				cli.Uint64Flag{
					Name:  "fee, x",
					Value: 0,
					Usage: " fee charged per transfer `COUNT`",
				},
			},
			Action: runDeploy,
		},
		{
			Name:      "get",
			Usage:     "show one ledger",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				symbolFlag(),
			},
			Action: runGet,
		},
		{
			Name:      "list",
			Usage:     "list all ledgers",
			ArgsUsage: " ",
			Flags:     []cli.Flag{},
			Action:    runList,
		},
		{
			Name:      "wallet",
			Usage:     "create a wallet for a ledger",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				symbolFlag(),
			},
			Action: runWallet,
		},
		{
			Name:      "transfer",
			Usage:     "send tokens to another wallet",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				symbolFlag(),
				cli.StringFlag{
					Name:  "from, F",
					Value: "",
					Usage: "*sender public key `HEX`",
				},
				cli.StringFlag{
					Name:  "to, T",
					Value: "",
					Usage: "*receiver public key `HEX`",
				},
				cli.Uint64Flag{
					Name:  "amount, a",
					Value: 0,
					Usage: "*amount to send `COUNT`",
				},
				cli.StringFlag{
					Name:   "key, k",
					Value:  "",
					Usage:  "*sender private key `HEX`",
					EnvVar: "LEDGER_PRIVATE_KEY",
				},
			},
			Action: runTransfer,
		},
		{
			Name:      "balance",
			Usage:     "show the balance of a wallet",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				symbolFlag(),
				publicKeyFlag(),
			},
			Action: runBalance,
		},
		{
			Name:      "transactions",
			Usage:     "list transactions involving a wallet",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				symbolFlag(),
				publicKeyFlag(),
				cli.Uint64Flag{
					Name:  "start, b",
					Value: 0,
					Usage: " first record `NUMBER`",
				},
				cli.IntFlag{
					Name:  "count, n",
					Value: 20,
					Usage: " maximum records to return `COUNT`",
				},
			},
			Action: runTransactions,
		},
		{
			Name:      "watch",
			Usage:     "follow the transaction feed of a ledgerd https_rpc listener",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:   "https, H",
					Value:  "127.0.0.1:2131",
					Usage:  "*ledgerd https_rpc `HOST:PORT`",
					EnvVar: "LEDGER_HTTPS",
				},
				cli.StringFlag{
					Name:  "symbol, s",
					Value: "",
					Usage: " only this ledger `SYMBOL`",
				},
				cli.IntFlag{
					Name:  "limit, l",
					Value: 0,
					Usage: " stop after `COUNT` events (0 = never)",
				},
			},
			Action: runWatch,
		},
		{
			Name:      "info",
			Usage:     "display ledgerd status",
			ArgsUsage: " ",
			Flags:     []cli.Flag{},
			Action:    runInfo,
		},
		{
			Name:      "version",
			Usage:     "display ledger-cli version",
			ArgsUsage: " ",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	app.Before = func(c *cli.Context) error {
		c.App.Metadata["config"] = &metadata{
			connect:     c.GlobalString("connect"),
			fingerprint: c.GlobalString("fingerprint"),
			verbose:     c.GlobalBool("verbose"),
			e:           c.App.ErrWriter,
			w:           c.App.Writer,
		}
		return nil
	}

	return app
}

func symbolFlag() cli.Flag {
	return cli.StringFlag{
		Name:  "symbol, s",
		Value: "",
		Usage: "*token symbol `SYMBOL`",
	}
}

func publicKeyFlag() cli.Flag {
	return cli.StringFlag{
		Name:  "address, A",
		Value: "",
		Usage: "*wallet public key `HEX`",
	}
}
