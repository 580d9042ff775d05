/*
   tibasic - TI-Basic program compiler & decompiler
   Copyright (c) 2021, Alexander Vollschwitz

   This file is part of tibasic.

   tibasic is free software: you can redistribute it and/or modify
   it under the terms of the GNU General Public License as published by
   the Free Software Foundation, either version 3 of the License, or
   (at your option) any later version.

   tibasic is distributed in the hope that it will be useful,
   but WITHOUT ANY WARRANTY; without even the implied warranty of
   MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
   GNU General Public License for more details.

   You should have received a copy of the GNU General Public License
   along with tibasic. If not, see <http://www.gnu.org/licenses/>.
*/

package run

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/tibasic/pkg/control"
)

//
func NewServe() *Serve {

	s := &Serve{}
	s.Runner = *NewRunner(
		`serve [-a|--address {address}] [-r|--repo {repo base folder}]
      [-t|--tokens {file}]`,
		"API server command",
		`
Use the serve command for running the API server. It compiles, decompiles, and
validates programs sent to it, and can decompile programs from a repository
folder on the server host.`,
		"", `- Logging can be configured with these environment variables:

  LOG_FORMAT		set to 'json' for JSON logging
  LOG_FORCE_COLORS	set to non-empty for forcing colorized log entries
  LOG_METHODS		set to non-empty for including methods in log
  LOG_LEVEL		panic, fatal, error, warn, info, debug, trace

`+runnerHelpEpilogue, s.Run)

	s.AddBaseSettings()
	s.AddSetting(&s.Address, "address", "a", "TIBASIC_ADDRESS", ":8888",
		"listen address", false)
	s.AddSetting(&s.Repository, "repo", "r", "TIBASIC_REPO", nil,
		`program repo base folder; when omitted, loading
programs from server host's file system is prohibited`, false)

	return s
}

//
type Serve struct {
	//
	Runner
	//
	Address    string
	Repository string
}

//
func (s *Serve) Run() error {

	if err := s.ParseSettings(); err != nil {
		return err
	}

	entries, err := s.Entries()
	if err != nil {
		return err
	}

	wg := &sync.WaitGroup{}
	wg.Add(1)
	failed := make(chan error, 1)

	api := control.NewAPIServer(s.Address, s.Repository, entries)
	go func() {
		defer wg.Done()
		if err := api.Serve(); err != nil {
			log.Errorf("API server closed with error: %v", err)
			failed <- err
		} else {
			log.Info("API server stopped")
		}
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	sigCount := 0
	done := make(chan bool)

	for {

		select {

		case sig := <-sigs: // interrupt signal
			log.WithField("signal", sig).Info("signal received")
			sigCount++

			switch sigCount {

			case 1:
				go func() {
					log.Info("shutting down, hit Ctrl-C twice to force exit...")
					api.Stop()
					wg.Wait()
					log.Info("tibasic stopped")
					done <- true
				}()

			case 2:
				log.Warn("shutdown in progress, hit Ctrl-C again to force exit")

			default:
				log.Warn("forcing server to stop immediately")
				os.Exit(1)
			}

		case err := <-failed: // server could not start or broke down
			return err

		case <-done: // shutdown sequence complete
			return nil
		}
	}
}
