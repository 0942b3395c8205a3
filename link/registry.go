// Package link carries register operations between the avrassist host tool
// and the monitor firmware on the board.
//
// The host never composes register values on the device. It snapshots the
// registers into a core.Memory, runs the peripheral facades against that
// copy, and replays the journal over the link. Timed sequences are replayed
// as one reg_timed command so the device masks interrupts around the unlock
// itself.
package link

import (
	"errors"
	"sync"

	"avrassist/core"
	"avrassist/protocol"
)

// Message names. IDs are assigned in the order of messages below, so host
// and firmware built from the same source agree on them.
const (
	CmdIdentify     = "identify"
	CmdRegRead      = "reg_read"
	CmdRegSet       = "reg_set"
	CmdRegClear     = "reg_clear"
	CmdRegAssign    = "reg_assign"
	CmdRegTimed     = "reg_timed"
	CmdWatchdogKick = "wdt_kick"

	RespIdentify = "identify_response"
	RespRegState = "reg_state"
	RespNak      = "nak"
)

var messages = [...]struct{ name, format string }{
	{CmdIdentify, ""},
	{CmdRegRead, "reg=%c"},
	{CmdRegSet, "reg=%c mask=%c"},
	{CmdRegClear, "reg=%c mask=%c"},
	{CmdRegAssign, "reg=%c value=%c"},
	{CmdRegTimed, "reg=%c unlock=%c value=%c wdr=%c"},
	{CmdWatchdogKick, ""},
	{RespIdentify, "dict_crc=%u registers=%c"},
	{RespRegState, "reg=%c value=%c"},
	{RespNak, "cmd=%c reason=%s"},
}

var (
	ErrUnknownCommand  = errors.New("unknown_command")
	ErrUnknownRegister = errors.New("unknown_register")
	ErrNotTimed        = errors.New("register_not_timed")
)

// Handler decodes a command's arguments and executes it.
type Handler func(args *[]byte) error

// Command is one registered message. Responses have no handler.
type Command struct {
	ID      uint16
	Name    string
	Format  string
	Handler Handler
}

// Registry maps message names to IDs and IDs to handlers.
type Registry struct {
	mu       sync.RWMutex
	commands []Command
	byName   map[string]uint16
}

// NewRegistry returns a registry holding every link message, without
// handlers.
func NewRegistry() *Registry {
	r := &Registry{byName: make(map[string]uint16, len(messages))}
	for _, m := range messages {
		r.Register(m.name, m.format, nil)
	}
	return r
}

// Register adds a message and returns its ID. Registering a name twice
// returns the existing ID.
func (r *Registry) Register(name, format string, handler Handler) uint16 {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.byName[name]; ok {
		return id
	}
	id := uint16(len(r.commands))
	r.commands = append(r.commands, Command{ID: id, Name: name, Format: format, Handler: handler})
	r.byName[name] = id
	return id
}

// Handle binds a handler to a registered message.
func (r *Registry) Handle(name string, handler Handler) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byName[name]
	if !ok {
		return false
	}
	r.commands[id].Handler = handler
	return true
}

// ID returns the ID of a registered message.
func (r *Registry) ID(name string) (uint16, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byName[name]
	return id, ok
}

// MustID is ID for the names declared in this package.
func (r *Registry) MustID(name string) uint16 {
	id, ok := r.ID(name)
	if !ok {
		panic("link: unregistered message " + name)
	}
	return id
}

// Get returns the message with the given ID.
func (r *Registry) Get(id uint16) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if int(id) >= len(r.commands) {
		return Command{}, false
	}
	return r.commands[id], true
}

// Dispatch runs the handler for id.
func (r *Registry) Dispatch(id uint16, args *[]byte) error {
	cmd, ok := r.Get(id)
	if !ok || cmd.Handler == nil {
		return ErrUnknownCommand
	}
	return cmd.Handler(args)
}

// Dictionary lists every message as "name format", one per line, in ID
// order.
func (r *Registry) Dictionary() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dict := ""
	for _, c := range r.commands {
		if c.Format != "" {
			dict += c.Name + " " + c.Format + "\n"
		} else {
			dict += c.Name + "\n"
		}
	}
	return dict
}

// DictionaryCRC identifies the message set. The host compares it with the
// device's answer to identify.
func (r *Registry) DictionaryCRC() uint16 {
	return protocol.CRC16([]byte(r.Dictionary()))
}

func decodeRegister(args *[]byte) (core.Register, error) {
	v, err := protocol.DecodeUint8(args)
	if err != nil {
		return 0, err
	}
	reg := core.Register(v)
	if !reg.Valid() {
		return 0, ErrUnknownRegister
	}
	return reg, nil
}
