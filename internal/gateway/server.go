package gateway

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/strikecore/server/internal/config"
	"github.com/strikecore/server/internal/system"
	"github.com/strikecore/server/internal/world"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // clients connect from arbitrary origins
	},
}

// Gateway is the websocket front door. It accepts connections, validates the
// hello handshake, queues joins/leaves/intents for the simulation to drain
// once per tick, and fans simulation output back to every bound client.
//
// It implements system.IntentSource and system.Broadcaster. All queue access
// is mutex-guarded; the simulation side only ever touches the queues from the
// game loop goroutine.
type Gateway struct {
	log *zap.Logger
	cfg config.NetworkConfig

	serverName   string
	mapName      string
	passwordHash string
	readTimeout  time.Duration
	writeTimeout time.Duration

	httpSrv *http.Server

	mu       sync.Mutex
	clients  map[uint64]*client
	byCombat map[int64]*client
	nextKey  uint64
	joins    []system.JoinRequest
	leaves   []int64
	intents  []system.QueuedIntent
}

func New(cfg config.NetworkConfig, serverName, mapName, passwordHash string, log *zap.Logger) *Gateway {
	return &Gateway{
		log:          log,
		cfg:          cfg,
		serverName:   serverName,
		mapName:      mapName,
		passwordHash: passwordHash,
		readTimeout:  cfg.ReadTimeout,
		writeTimeout: cfg.WriteTimeout,
		clients:      make(map[uint64]*client),
		byCombat:     make(map[int64]*client),
	}
}

// Start begins accepting connections on the configured bind address.
// Non-blocking; listen errors surface on the returned channel.
func (g *Gateway) Start() <-chan error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", g.handleWS)
	g.httpSrv = &http.Server{Addr: g.cfg.BindAddress, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		err := g.httpSrv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()
	g.log.Info("gateway listening", zap.String("addr", g.cfg.BindAddress))
	return errCh
}

// Shutdown stops the listener and closes every client connection.
func (g *Gateway) Shutdown(ctx context.Context) error {
	g.mu.Lock()
	for _, c := range g.clients {
		close(c.send)
	}
	g.clients = make(map[uint64]*client)
	g.byCombat = make(map[int64]*client)
	g.mu.Unlock()

	if g.httpSrv != nil {
		return g.httpSrv.Shutdown(ctx)
	}
	return nil
}

func (g *Gateway) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Warn("upgrade failed", zap.Error(err))
		return
	}

	g.mu.Lock()
	g.nextKey++
	c := &client{
		key:  g.nextKey,
		conn: conn,
		gw:   g,
		send: make(chan []byte, g.cfg.OutQueueSize),
	}
	g.clients[c.key] = c
	g.mu.Unlock()

	g.log.Debug("client connected", zap.Uint64("client", c.key), zap.String("remote", conn.RemoteAddr().String()))
	go c.readPump()
	go c.writePump()
}

func (g *Gateway) handleHello(c *client, msg HelloMsg) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if c.hello {
		return
	}
	if msg.Name == "" {
		c.sendMsg(RejectMsg{Type: MsgTypeReject, Reason: "name required"})
		c.conn.Close()
		return
	}
	if g.passwordHash != "" {
		if bcrypt.CompareHashAndPassword([]byte(g.passwordHash), []byte(msg.Password)) != nil {
			c.sendMsg(RejectMsg{Type: MsgTypeReject, Reason: "bad password"})
			c.conn.Close()
			g.log.Info("join rejected", zap.String("name", msg.Name))
			return
		}
	}

	c.hello = true
	g.joins = append(g.joins, system.JoinRequest{ClientKey: c.key, Name: msg.Name})
}

func (g *Gateway) handleIntent(c *client, msg IntentMsg) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if c.combatantID == 0 {
		return
	}
	if len(g.intents) >= g.cfg.InQueueSize {
		return
	}
	g.intents = append(g.intents, system.QueuedIntent{
		CombatantID: c.combatantID,
		Intent: world.Intent{
			MoveX:        msg.MoveX,
			MoveZ:        msg.MoveZ,
			LookYaw:      msg.LookYaw,
			LookPitch:    msg.LookPitch,
			Jump:         msg.Jump,
			CrouchToggle: msg.CrouchToggle,
			Run:          msg.Run,
			FirePressed:  msg.FirePressed,
			FireHeld:     msg.FireHeld,
			Reload:       msg.Reload,
			Interact:     msg.Interact,
			ScopeToggle:  msg.ScopeToggle,
			SwitchSlot:   msg.SwitchSlot,
			BuyWeapon:    msg.BuyWeapon,
			BuyArmor:     msg.BuyArmor,
			Drop:         msg.Drop,
		},
	})
}

func (g *Gateway) disconnect(c *client) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.clients[c.key]; !ok {
		return
	}
	delete(g.clients, c.key)
	if c.combatantID != 0 {
		delete(g.byCombat, c.combatantID)
		g.leaves = append(g.leaves, c.combatantID)
	}
	close(c.send)
	g.log.Debug("client disconnected", zap.Uint64("client", c.key))
}

// DrainJoins implements system.IntentSource.
func (g *Gateway) DrainJoins() []system.JoinRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := g.joins
	g.joins = nil
	return out
}

// DrainLeaves implements system.IntentSource.
func (g *Gateway) DrainLeaves() []int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := g.leaves
	g.leaves = nil
	return out
}

// DrainIntents implements system.IntentSource.
func (g *Gateway) DrainIntents() []system.QueuedIntent {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := g.intents
	g.intents = nil
	return out
}

// Bind implements system.IntentSource: the simulation confirms which
// combatant a client now controls, which triggers the welcome message.
func (g *Gateway) Bind(clientKey uint64, combatantID int64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	c, ok := g.clients[clientKey]
	if !ok {
		// Disconnected between hello and bind; the simulation will see the
		// leave on the next drain.
		g.leaves = append(g.leaves, combatantID)
		return
	}
	c.combatantID = combatantID
	g.byCombat[combatantID] = c
	c.sendMsg(WelcomeMsg{
		Type:        MsgTypeWelcome,
		CombatantID: combatantID,
		ServerName:  g.serverName,
		MapName:     g.mapName,
		TickRateMS:  g.cfg.TickRate.Milliseconds(),
	})
}

// BroadcastSnapshot implements system.Broadcaster. The snapshot is marshaled
// once and fanned out to every bound client.
func (g *Gateway) BroadcastSnapshot(snap *system.Snapshot) {
	data, err := msgpack.Marshal(struct {
		Type string `msgpack:"type"`
		*system.Snapshot
	}{Type: MsgTypeSnapshot, Snapshot: snap})
	if err != nil {
		g.log.Error("marshal snapshot", zap.Error(err))
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	for _, c := range g.clients {
		if c.combatantID == 0 {
			continue
		}
		select {
		case c.send <- data:
		default:
		}
	}
}

// BroadcastEvent fans a game notification out to every bound client.
func (g *Gateway) BroadcastEvent(msg EventMsg) {
	msg.Type = MsgTypeEvent
	data, err := msgpack.Marshal(msg)
	if err != nil {
		g.log.Error("marshal event", zap.Error(err))
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, c := range g.clients {
		if c.combatantID != 0 {
			select {
			case c.send <- data:
			default:
			}
		}
	}
}

// Notice sends a HUD line to one combatant, or everyone when id is 0.
func (g *Gateway) Notice(combatantID int64, text string) {
	data, err := msgpack.Marshal(NoticeMsg{Type: MsgTypeNotice, Text: text})
	if err != nil {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if combatantID != 0 {
		if c, ok := g.byCombat[combatantID]; ok {
			select {
			case c.send <- data:
			default:
			}
		}
		return
	}
	for _, c := range g.clients {
		if c.combatantID != 0 {
			select {
			case c.send <- data:
			default:
			}
		}
	}
}
