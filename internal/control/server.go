package control

import (
	"fmt"
	"net"
	"strconv"

	"github.com/hypebeast/go-osc/osc"
	"go.uber.org/zap"

	"github.com/lacylights/ledshow/internal/engineerr"
)

// pidLetters maps the letter aliases A-E accepted for a palette index
// onto the same 0-4 range as their numeric equivalents.
var pidLetters = map[byte]int{'A': 0, 'B': 1, 'C': 2, 'D': 3, 'E': 4}

// Server listens for OSC control messages and enqueues decoded Commands
// onto a Queue for the frame loop to drain.
type Server struct {
	addr   string
	queue  *Queue
	log    *zap.Logger
	conn   net.PacketConn
	server *osc.Server
}

// NewServer builds a control server bound to host:port, routing every
// decoded command onto queue.
func NewServer(host string, port int, queue *Queue, log *zap.Logger) *Server {
	return &Server{
		addr:  fmt.Sprintf("%s:%d", host, port),
		queue: queue,
		log:   log,
	}
}

// Listen binds the UDP socket without yet dispatching, so callers (and
// tests) can learn the bound address before Serve starts blocking —
// useful when s.addr's port is 0 (ephemeral).
func (s *Server) Listen() (net.Addr, error) {
	conn, err := net.ListenPacket("udp", s.addr)
	if err != nil {
		return nil, engineerr.IOf(err, "control: listen on %s", s.addr)
	}
	s.conn = conn
	return conn.LocalAddr(), nil
}

// Serve dispatches messages on the socket opened by Listen until Close
// is called, at which point it returns net.ErrClosed (or a wrapped
// variant depending on the platform).
func (s *Server) Serve() error {
	dispatcher := osc.NewStandardDispatcher()
	s.registerHandlers(dispatcher)

	s.server = &osc.Server{Dispatcher: dispatcher}
	return s.server.Serve(s.conn)
}

// ListenAndServe binds the UDP socket and blocks dispatching messages;
// equivalent to calling Listen then Serve.
func (s *Server) ListenAndServe() error {
	if _, err := s.Listen(); err != nil {
		return err
	}
	return s.Serve()
}

// Close releases the control socket, unblocking ListenAndServe.
func (s *Server) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *Server) registerHandlers(d *osc.StandardDispatcher) {
	must := func(addr string, h osc.HandlerFunc) {
		if err := d.AddMsgHandler(addr, h); err != nil {
			s.log.Error("control: failed to register address", zap.String("address", addr), zap.Error(err))
		}
	}

	must("/load_json", s.handleLoadJSON)
	must("/change_scene", s.handleIntArg(ChangeScene))
	must("/change_effect", s.handleIntArg(ChangeEffect))
	must("/change_palette", s.handleIntArg(ChangePalette))
	must("/change_pattern", s.handleNoArg(ChangePattern))
	must("/pause", s.handleNoArg(Pause))
	must("/resume", s.handleNoArg(Resume))
	must("/load_dissolve_json", s.handleLoadDissolveJSON)
	must("/set_dissolve_pattern", s.handleIntArg(SetDissolvePattern))
	must("/set_speed_percent", s.handleIntArg(SetSpeedPercent))
	must("/master_brightness", s.handleIntArg(SetMasterBrightness))
	must("/ping", s.handleNoArg(Ping))
	must("/status", s.handleNoArg(Status))

	for pid := 0; pid <= 4; pid++ {
		for cid := 0; cid < 6; cid++ {
			must(fmt.Sprintf("/palette/%d/%d", pid, cid), s.handlePaletteEntry(pid, cid))
		}
	}
	for letter, pid := range pidLetters {
		for cid := 0; cid < 6; cid++ {
			must(fmt.Sprintf("/palette/%c/%d", letter, cid), s.handlePaletteEntry(pid, cid))
		}
	}
}

func (s *Server) handleLoadJSON(msg *osc.Message) {
	path, ok := stringArg(msg, 0)
	if !ok {
		s.reject("/load_json", "expected a string path argument")
		return
	}
	s.queue.Enqueue(Command{Kind: LoadShow, Path: path})
}

func (s *Server) handleLoadDissolveJSON(msg *osc.Message) {
	path, ok := stringArg(msg, 0)
	if !ok {
		s.reject("/load_dissolve_json", "expected a string path argument")
		return
	}
	s.queue.Enqueue(Command{Kind: LoadDissolveShow, Path: path})
}

func (s *Server) handleIntArg(kind Kind) osc.HandlerFunc {
	return func(msg *osc.Message) {
		v, ok := intArg(msg, 0)
		if !ok {
			s.reject(msg.Address, "expected one integer argument")
			return
		}
		cmd := Command{Kind: kind}
		switch kind {
		case ChangeScene, ChangeEffect, ChangePalette, SetDissolvePattern:
			cmd.ID = v
		case SetSpeedPercent, SetMasterBrightness:
			cmd.Value = v
		}
		s.queue.Enqueue(cmd)
	}
}

func (s *Server) handleNoArg(kind Kind) osc.HandlerFunc {
	return func(msg *osc.Message) {
		s.queue.Enqueue(Command{Kind: kind})
	}
}

func (s *Server) handlePaletteEntry(pid, cid int) osc.HandlerFunc {
	return func(msg *osc.Message) {
		r, okR := intArg(msg, 0)
		g, okG := intArg(msg, 1)
		b, okB := intArg(msg, 2)
		if !okR || !okG || !okB {
			s.reject(msg.Address, "expected three integer arguments (r,g,b)")
			return
		}
		s.queue.Enqueue(Command{Kind: PaletteEntry, PaletteID: pid, ColorID: cid, R: r, G: g, B: b})
	}
}

func (s *Server) reject(address, reason string) {
	err := engineerr.Validationf("%s: %s", address, reason)
	s.log.Warn("control: rejected message", zap.String("address", address), zap.Error(err))
}

func intArg(msg *osc.Message, i int) (int, bool) {
	if i >= len(msg.Arguments) {
		return 0, false
	}
	switch v := msg.Arguments[i].(type) {
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case float32:
		return int(v), true
	case string:
		n, err := strconv.Atoi(v)
		return n, err == nil
	default:
		return 0, false
	}
}

func stringArg(msg *osc.Message, i int) (string, bool) {
	if i >= len(msg.Arguments) {
		return "", false
	}
	v, ok := msg.Arguments[i].(string)
	return v, ok
}
