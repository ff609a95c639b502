// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/AwesomeEcosystem/nomics/background"
	"github.com/AwesomeEcosystem/nomics/configuration"
	"github.com/AwesomeEcosystem/nomics/messagebus"
	"github.com/AwesomeEcosystem/nomics/publish"
	"github.com/AwesomeEcosystem/nomics/registry"
	"github.com/AwesomeEcosystem/nomics/rpc"
	"github.com/AwesomeEcosystem/nomics/storage"
	"github.com/AwesomeEcosystem/nomics/util"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
		{Long: "memory-stats", HasArg: getoptions.NO_ARGUMENT, Short: 'm'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration and
	// process data needed for initial setup
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := getConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands require the configuration and
	// perform enquiries on the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// general info
	log.Infof("database: %q  backend: %s", theConfiguration.Database.Name, theConfiguration.Database.Backend)
	log.Infof("durability: %s", theConfiguration.Durability)

	// connection info
	log.Debugf("%s = %#v", "ClientRPC", theConfiguration.ClientRPC)
	log.Debugf("%s = %#v", "HttpsRPC", theConfiguration.HttpsRPC)
	log.Debugf("%s = %#v", "Publishing", theConfiguration.Publishing)

	// start the data storage
	log.Info("initialise storage")
	db, err := storage.Open(logger.New("storage"), theConfiguration.Database.Backend, theConfiguration.Database.Name)
	if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}
	defer db.Close()

	// transaction announcements for publishing and the event feed
	bus := messagebus.NewBroadcast()

	// restore all ledgers
	log.Info("initialise registry")
	registryOptions := theConfiguration.registryOptions()
	registryOptions.Bus = bus
	reg, err := registry.New(logger.New("registry"), db, registryOptions)
	if nil != err {
		log.Criticalf("registry initialise error: %s", err)
		exitwithstatus.Message("registry initialise error: %s", err)
	}
	defer reg.Close()
	log.Infof("restored ledgers: %d", reg.Count())

	// platform token
	if "" != theConfiguration.Native.Symbol {
		err = ensureNative(log, reg, &theConfiguration.Native)
		if nil != err {
			log.Criticalf("native ledger error: %s", err)
			exitwithstatus.Message("native ledger error: %s", err)
		}
	}

	// start up the publishing background processes
	err = publish.Initialise(&theConfiguration.Publishing, bus)
	if nil != err {
		log.Criticalf("publish initialise error: %s", err)
		exitwithstatus.Message("publish initialise error: %s", err)
	}
	defer publish.Finalise()

	// start up the rpc background processes
	err = rpc.Initialise(&theConfiguration.ClientRPC, &theConfiguration.HttpsRPC, reg, bus, hex.EncodeToString(publish.PublicKey()), version)
	if nil != err {
		log.Criticalf("rpc initialise error: %s", err)
		exitwithstatus.Message("rpc initialise error: %s", err)
	}
	defer rpc.Finalise()

	// follow configuration changes
	watcher, err := configuration.NewWatcher(logger.New(configuration.WatcherLoggerPrefix), configurationFile)
	if nil != err {
		log.Criticalf("configuration watcher error: %s", err)
		exitwithstatus.Message("configuration watcher error: %s", err)
	}
	processes := background.Processes{
		watcher,
		newReloader(logger.New("reload"), watcher),
	}

	// if memory logging enabled
	if len(options["memory-stats"]) > 0 {
		processes = append(processes, newMemoryStats(logger.New("memory"), reg))
	}

	watching := background.Start(processes, nil)
	defer watching.Stop()

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
}

// deploy the native ledger on first start and save its wallet
func ensureNative(log *logger.L, reg *registry.Registry, native *NativeType) error {
	d, err := reg.EnsureNative(native.Name, native.Symbol, native.TotalSupply, native.TransactionFee)
	if nil != err {
		return err
	}
	if nil == d {
		log.Infof("native ledger: %s already present", native.Symbol)
		return nil
	}

	log.Warnf("native ledger: %s deployed  id: %s", d.Ledger.Symbol, d.Ledger.ID)

	data, err := json.MarshalIndent(d, "", "  ")
	if nil != err {
		return err
	}
	data = append(data, '\n')

	if "" != native.WalletFile {
		err = util.WriteSecretFile(native.WalletFile, data)
		if nil == err {
			log.Warnf("native wallet saved to: %q", native.WalletFile)
			return nil
		}
		log.Errorf("native wallet: %q  error: %s", native.WalletFile, err)
	}

	// the wallet cannot be recovered later so it must be shown once
	fmt.Fprintf(os.Stderr, "native ledger deployment:\n%s", data)
	return nil
}
