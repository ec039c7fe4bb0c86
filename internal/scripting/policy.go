package scripting

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/arena/internal/game/combat"
	"github.com/cory-johannsen/arena/internal/game/dice"
)

// Hook is the global Lua function a policy script defines:
//
//	function choose_action(self, roster) ... end
//
// self and every roster entry are tables with name, hp, max_hp, controller
// and index (1-based roster position). It returns arena.attack(name),
// arena.idle(), or nil to defer to the baseline policy.
const Hook = "choose_action"

const (
	kindAttack = "attack"
	kindIdle   = "idle"
)

// Policy is a combat.Policy backed by a sandboxed Lua VM.
//
// Policy is safe for concurrent use; calls are serialized on the VM.
type Policy struct {
	mu        sync.Mutex
	L         *lua.LState
	instLimit int
	logger    *zap.Logger
	fallback  combat.Policy
	seed      uint64
	dice      *dice.SeededSource
}

// Option configures a Policy.
type Option func(*Policy)

// WithSeed sets the seed arena.roll draws from. Before every hook call the
// dice are reseeded from the seed and the view, so the same seed and view
// always produce the same action.
func WithSeed(seed uint64) Option {
	return func(p *Policy) { p.seed = seed }
}

// NewPolicy creates a sandboxed VM, registers the arena.* helpers, then
// executes every *.lua file in scriptDir in lexicographic order.
//
// Precondition: scriptDir must be a readable directory; logger must be non-nil.
// Postcondition: Returns a Policy owning the VM, or an error on read or Lua
// load failure.
func NewPolicy(scriptDir string, instLimit int, logger *zap.Logger, opts ...Option) (*Policy, error) {
	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		return nil, fmt.Errorf("scripting: reading script dir %q: %w", scriptDir, err)
	}
	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(scriptDir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	p := newPolicy(instLimit, logger, opts)
	for _, path := range luaFiles {
		if err := p.load(func() error { return p.L.DoFile(path) }); err != nil {
			p.Close()
			return nil, fmt.Errorf("scripting: loading %q: %w", path, err)
		}
	}
	return p, nil
}

// NewPolicyFromString is NewPolicy for a single in-memory chunk.
func NewPolicyFromString(src string, instLimit int, logger *zap.Logger, opts ...Option) (*Policy, error) {
	p := newPolicy(instLimit, logger, opts)
	if err := p.load(func() error { return p.L.DoString(src) }); err != nil {
		p.Close()
		return nil, fmt.Errorf("scripting: loading chunk: %w", err)
	}
	return p, nil
}

func newPolicy(instLimit int, logger *zap.Logger, opts []Option) *Policy {
	p := &Policy{
		L:         NewSandboxedState(instLimit),
		instLimit: instLimit,
		logger:    logger,
		fallback:  combat.SelfTargetPolicy{},
	}
	for _, opt := range opts {
		opt(p)
	}
	p.dice = dice.NewSeededSource(p.seed, 0)
	RegisterModules(p.L, logger, dice.NewRoller(p.dice, logger))
	return p
}

func (p *Policy) load(run func() error) error {
	cancel := Arm(p.L, p.instLimit)
	defer cancel()
	return run()
}

// Close releases the VM.
func (p *Policy) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.L.Close()
}

// Choose calls the choose_action hook with snapshots of the view. A missing
// hook, a nil result, a Lua error, an exhausted instruction budget, or a
// malformed result all yield the baseline policy's choice; errors are logged
// at Warn.
//
// Postcondition: Returns a non-nil Action.
func (p *Policy) Choose(v combat.View) combat.Action {
	p.mu.Lock()
	defer p.mu.Unlock()

	fn := p.L.GetGlobal(Hook)
	if fn == lua.LNil {
		return p.fallback.Choose(v)
	}
	p.dice.Seed(p.seed, viewKey(v))

	roster := p.L.NewTable()
	for i, s := range v.Combatants {
		roster.Append(snapshotTable(p.L, s, i))
	}
	self := snapshotTable(p.L, v.Actor(), v.Self)

	cancel := Arm(p.L, p.instLimit)
	err := p.L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, self, roster)
	cancel()
	if err != nil {
		p.logger.Warn("scripting: Lua runtime error",
			zap.String("hook", Hook),
			zap.String("actor", v.Actor().Name),
			zap.Error(err),
		)
		return p.fallback.Choose(v)
	}

	ret := p.L.Get(-1)
	p.L.Pop(1)

	action, err := decodeAction(ret)
	if err != nil {
		p.logger.Warn("scripting: malformed action",
			zap.String("hook", Hook),
			zap.String("actor", v.Actor().Name),
			zap.Error(err),
		)
		return p.fallback.Choose(v)
	}
	if action == nil {
		return p.fallback.Choose(v)
	}
	return action
}

// viewKey hashes everything a hook can observe in v.
func viewKey(v combat.View) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	putInt := func(n int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(n))
		_, _ = h.Write(buf[:])
	}
	putInt(v.Round)
	putInt(v.Self)
	for _, s := range v.Combatants {
		putInt(len(s.Name))
		_, _ = h.Write([]byte(s.Name))
		putInt(s.HP)
		putInt(s.MaxHP)
		putInt(int(s.Controller))
	}
	return h.Sum64()
}

func snapshotTable(L *lua.LState, s combat.Snapshot, idx int) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("name", lua.LString(s.Name))
	t.RawSetString("hp", lua.LNumber(s.HP))
	t.RawSetString("max_hp", lua.LNumber(s.MaxHP))
	t.RawSetString("controller", lua.LString(s.Controller.String()))
	t.RawSetString("index", lua.LNumber(idx+1))
	return t
}

// decodeAction converts a hook result into an Action; nil means "no opinion".
func decodeAction(v lua.LValue) (combat.Action, error) {
	if v == lua.LNil {
		return nil, nil
	}
	t, ok := v.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("expected table, got %s", v.Type())
	}
	switch kind := lua.LVAsString(t.RawGetString("kind")); kind {
	case kindAttack:
		target, ok := t.RawGetString("target").(lua.LString)
		if !ok || target == "" {
			return nil, fmt.Errorf("attack without a target name")
		}
		return combat.Attack{Target: combat.TargetNamed(string(target))}, nil
	case kindIdle:
		return combat.Idle{}, nil
	default:
		return nil, fmt.Errorf("unknown action kind %q", kind)
	}
}
