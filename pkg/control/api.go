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

package control

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/tibasic/pkg/basic"
	"github.com/xelalexv/tibasic/pkg/format"
	"github.com/xelalexv/tibasic/pkg/prgm"
	"github.com/xelalexv/tibasic/pkg/repo"
	"github.com/xelalexv/tibasic/pkg/tokens"
)

// MaxBodySize is the largest request body accepted
const MaxBodySize = 1048576

//
type APIServer interface {
	Serve() error
	Stop() error
}

/*
	NewAPIServer creates an API server listening on addr. Programs referenced
	with repo:// are resolved against repository; loading from the repository
	is disabled when it is empty. The server compiles and decompiles with the
	given token table entries.
*/
func NewAPIServer(addr, repository string, entries []tokens.Entry) APIServer {
	return newAPI(addr, repository, entries)
}

//
func newAPI(addr, repository string, entries []tokens.Entry) *api {
	if entries == nil {
		entries = tokens.Default()
	}
	return &api{address: addr, repository: repository, entries: entries}
}

//
type api struct {
	address    string
	repository string
	entries    []tokens.Entry
	server     *http.Server
}

//
func (a *api) Serve() error {

	addr := a.address
	if len(strings.Split(addr, ":")) < 2 {
		addr = fmt.Sprintf("%s:8888", a.address)
	}

	log.Infof("tibasic API starts listening on %s", addr)
	a.server = &http.Server{Addr: addr, Handler: a.routes()}

	err := a.server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

//
func (a *api) Stop() error {
	if a.server != nil {
		log.Info("API server stopping...")
		err := a.server.Shutdown(context.Background())
		a.server = nil
		return err
	}
	return nil
}

//
func (a *api) routes() *mux.Router {

	router := mux.NewRouter().StrictSlash(true)

	addRoute(router, "compile", "POST", "/compile", a.compile)
	addRoute(router, "decompile", "POST", "/decompile", a.decompile)
	addRoute(router, "validate", "POST", "/validate", a.validate)
	addRoute(router, "tokens", "GET", "/tokens", a.tokens)
	addRoute(router, "program", "GET", "/program", a.program)

	return router
}

//
func addRoute(r *mux.Router, name, method, pattern string,
	handler http.HandlerFunc) {
	r.Methods(method).
		Path(pattern).
		Name(name).
		Handler(requestLogger(handler, name))
}

//
func requestLogger(inner http.Handler, name string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		log.WithFields(log.Fields{
			"remote": r.RemoteAddr,
			"method": r.Method,
			"path":   r.RequestURI,
		}).Debugf("API BEGIN | %s", name)

		start := time.Now()
		inner.ServeHTTP(w, r)

		log.WithFields(log.Fields{
			"remote":   r.RemoteAddr,
			"method":   r.Method,
			"path":     r.RequestURI,
			"duration": time.Since(start),
		}).Debugf("API END   | %s", name)
	})
}

//
func (a *api) compile(w http.ResponseWriter, req *http.Request) {

	name, err := getArg(req, "name")
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return
	}
	comment, err := getArg(req, "comment")
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return
	}

	p, err := format.NewTXT(format.Options{
		Name: name, Comment: comment, Entries: a.entries,
	}).Read(io.LimitReader(req.Body, MaxBodySize), true)
	if err != nil {
		handleError(fmt.Errorf("cannot compile: %v", err),
			http.StatusUnprocessableEntity, w)
		return
	}
	if handleError(req.Body.Close(), http.StatusInternalServerError, w) {
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", prgm.FileName(p.Name())))
	w.WriteHeader(http.StatusOK)
	if _, err := p.WriteTo(w); err != nil {
		log.Errorf("problem sending program: %v", err)
	}
}

//
func (a *api) decompile(w http.ResponseWriter, req *http.Request) {

	p, err := format.NewPRGM().Read(io.LimitReader(req.Body, MaxBodySize), false)
	if err != nil {
		handleError(fmt.Errorf("program corrupted: %v", err),
			http.StatusUnprocessableEntity, w)
		return
	}
	if handleError(req.Body.Close(), http.StatusInternalServerError, w) {
		return
	}

	a.sendListing(p, isFlagSet(req, "passes"), w, req)
}

//
func (a *api) program(w http.ResponseWriter, req *http.Request) {

	ref, err := getArg(req, "ref")
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return
	}
	if !repo.IsReference(ref) {
		handleError(fmt.Errorf("not a repository reference: '%s'", ref),
			http.StatusUnprocessableEntity, w)
		return
	}

	in, err := repo.Resolve(ref, a.repository)
	if handleError(err, http.StatusNotFound, w) {
		return
	}
	defer in.Close()

	p, err := format.NewPRGM().Read(in, false)
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return
	}

	a.sendListing(p, isFlagSet(req, "passes"), w, req)
}

//
func (a *api) sendListing(p *prgm.Program, passes bool, w http.ResponseWriter,
	req *http.Request) {

	lines, unknown, err := format.NewTXT(format.Options{
		Entries: a.entries, Passes: passes,
	}).Decode(p.Body)
	if handleError(err, http.StatusInternalServerError, w) {
		return
	}

	if wantsJSON(req) {
		sendJSONReply(newListing(p, lines, unknown), http.StatusOK, w)
	} else {
		sendReply([]byte(strings.Join(lines, basic.LineSeparator)),
			http.StatusOK, w)
	}
}

//
func (a *api) validate(w http.ResponseWriter, req *http.Request) {

	buf, err := io.ReadAll(io.LimitReader(req.Body, MaxBodySize))
	if handleError(err, http.StatusInternalServerError, w) {
		return
	}

	res := &Validation{}

	p, err := prgm.Parse(buf)
	if err == nil {
		res.Name = p.Name()
		res.Size = p.Size()
		err = p.Validate()
	}

	status := http.StatusOK
	if err != nil {
		res.Error = err.Error()
		status = http.StatusUnprocessableEntity
	} else {
		res.Valid = true
	}

	if wantsJSON(req) {
		sendJSONReply(res, status, w)
	} else {
		sendReply([]byte(res.String()), status, w)
	}
}

//
func (a *api) tokens(w http.ResponseWriter, req *http.Request) {

	arg, err := getArg(req, "category")
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return
	}

	entries := a.entries
	if arg != "" {
		cat, err := tokens.ParseCategory(arg)
		if handleError(err, http.StatusUnprocessableEntity, w) {
			return
		}
		entries = tokens.Filter(entries, cat)
	}

	list := newTokenList(entries)

	if wantsJSON(req) {
		sendJSONReply(list, http.StatusOK, w)
	} else {
		sendReply([]byte(list.String()), http.StatusOK, w)
	}
}

//
func isFlagSet(req *http.Request, flag string) bool {
	arg, _ := getArg(req, flag)
	return arg == "true"
}

//
func getArg(req *http.Request, arg string) (string, error) {
	ret := req.URL.Query().Get(arg)
	if ret != "" {
		return url.QueryUnescape(ret)
	}
	return ret, nil
}

//
func setHeaders(h http.Header, json bool) {
	if json {
		h.Set("Content-Type", "application/json; charset=UTF-8")
	} else {
		h.Set("Content-Type", "text/plain; charset=UTF-8")
	}
}

//
func handleError(e error, statusCode int, w http.ResponseWriter) bool {

	if e == nil {
		return false
	}

	log.Errorf("%v", e)

	setHeaders(w.Header(), false)
	w.WriteHeader(statusCode)
	if _, err := w.Write([]byte(fmt.Sprintf("%v\n", e))); err != nil {
		log.Errorf("problem writing error: %v", err)
	}

	return true
}

//
func sendReply(body []byte, statusCode int, w http.ResponseWriter) {
	setHeaders(w.Header(), false)
	w.WriteHeader(statusCode)
	if _, err := fmt.Fprintf(w, "%s\n", body); err != nil {
		log.Errorf("problem sending reply: %v", err)
	}
}

//
func sendJSONReply(obj interface{}, statusCode int, w http.ResponseWriter) {
	setHeaders(w.Header(), true)
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(obj); err != nil {
		log.Errorf("problem writing reply: %v", err)
	}
}

// wantsJSON checks the Accept header first, then the Content-Type.
func wantsJSON(req *http.Request) bool {
	if strings.Contains(req.Header.Get("Accept"), "application/json") {
		return true
	}
	return req.Header.Get("Content-Type") == "application/json"
}
