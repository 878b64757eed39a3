package rpc

import (
	"encoding/json"
	"io"
	"io/ioutil"
	"net"
	"net/http"
	"sync"

	"github.com/inconshreveable/log15"
	"github.com/rs/cors"

	"github.com/vaultlabs/go-vault/vault"
)

const maxRequestSize = 1 << 16

// Server exposes the vault operations over HTTP. The transport is trusted
// to have authenticated the caller field of each request; the server only
// decodes it and hands it to the vault manager.
type Server struct {
	manager    *vault.Manager
	listenAddr string
	origins    []string

	lock     sync.Mutex
	listener net.Listener
	httpSrv  *http.Server

	log log15.Logger
}

func NewServer(manager *vault.Manager, listenAddr string, corsOrigins []string) *Server {
	return &Server{
		manager:    manager,
		listenAddr: listenAddr,
		origins:    corsOrigins,
		log:        log15.New("module", "rpc"),
	}
}

func (s *Server) Start() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	listener, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		return err
	}
	s.listener = listener
	s.httpSrv = &http.Server{Handler: s.Handler()}

	go func() {
		if err := s.httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.log.Error("rpc server stopped", "err", err)
		}
	}()

	s.log.Info("rpc server listening", "addr", listener.Addr().String())
	return nil
}

func (s *Server) Stop() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.httpSrv == nil {
		return nil
	}
	err := s.httpSrv.Close()
	s.httpSrv = nil
	s.listener = nil
	return err
}

func (s *Server) ListenAddr() string {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Handler builds the full handler chain, CORS included.
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodPost},
	})
	return c.Handler(http.HandlerFunc(s.serveRequest))
}

func (s *Server) serveRequest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := ioutil.ReadAll(io.LimitReader(r.Body, maxRequestSize))
	if err != nil {
		http.Error(w, "read error", http.StatusBadRequest)
		return
	}

	req := &Request{}
	if err := json.Unmarshal(body, req); err != nil {
		s.reply(w, &Response{Error: &Error{Code: CodeParseError, Message: "parse error"}})
		return
	}

	resp := s.dispatch(req)
	resp.ID = req.ID
	s.reply(w, resp)
}

func (s *Server) dispatch(req *Request) *Response {
	switch req.Method {
	case "vault_initializeAccount":
		params := &InitializeAccountParams{}
		if err := json.Unmarshal(req.Params, params); err != nil {
			return invalidParams(err)
		}
		addr, err := s.manager.InitializeAccount(params.Owner)
		if err != nil {
			return &Response{Error: wireError(err)}
		}
		return &Response{Result: &InitializeAccountResult{Account: addr}}

	case "vault_deposit":
		params := &AmountParams{}
		if err := json.Unmarshal(req.Params, params); err != nil {
			return invalidParams(err)
		}
		total, err := s.manager.Deposit(params.Account, params.Caller, uint64(params.Amount))
		if err != nil {
			return &Response{Error: wireError(err)}
		}
		return &Response{Result: &TotalResult{TotalDeposits: Uint64String(total)}}

	case "vault_withdraw":
		params := &AmountParams{}
		if err := json.Unmarshal(req.Params, params); err != nil {
			return invalidParams(err)
		}
		total, err := s.manager.Withdraw(params.Account, params.Caller, uint64(params.Amount))
		if err != nil {
			return &Response{Error: wireError(err)}
		}
		return &Response{Result: &TotalResult{TotalDeposits: Uint64String(total)}}

	case "vault_getBalance":
		params := &BalanceParams{}
		if err := json.Unmarshal(req.Params, params); err != nil {
			return invalidParams(err)
		}
		total, err := s.manager.GetBalance(params.Account, params.Caller)
		if err != nil {
			return &Response{Error: wireError(err)}
		}
		return &Response{Result: &TotalResult{TotalDeposits: Uint64String(total)}}

	case "vault_metrics":
		return &Response{Result: s.manager.Metrics().Snapshot()}

	default:
		return &Response{Error: &Error{Code: CodeMethodNotFound, Message: "method not found: " + req.Method}}
	}
}

func invalidParams(err error) *Response {
	return &Response{Error: &Error{Code: CodeInvalidParams, Message: "invalid params: " + err.Error()}}
}

func (s *Server) reply(w http.ResponseWriter, resp *Response) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.log.Error("write response", "err", err)
	}
}
