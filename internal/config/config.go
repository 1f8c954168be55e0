package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Server   ServerConfig   `toml:"server"`
	Network  NetworkConfig  `toml:"network"`
	Database DatabaseConfig `toml:"database"`
	Round    RoundConfig    `toml:"round"`
	Movement MovementConfig `toml:"movement"`
	Combat   CombatConfig   `toml:"combat"`
	Economy  EconomyConfig  `toml:"economy"`
	Data     DataConfig     `toml:"data"`
	Logging  LoggingConfig  `toml:"logging"`
}

type ServerConfig struct {
	Name         string `toml:"name"`
	ID           int    `toml:"id"`
	PasswordHash string `toml:"password_hash"` // bcrypt hash; empty = open server
	StartTime    int64  // set at boot, not from config
}

type NetworkConfig struct {
	BindAddress       string        `toml:"bind_address"`
	TickRate          time.Duration `toml:"tick_rate"`
	SnapshotInterval  int           `toml:"snapshot_interval"` // ticks between state snapshots
	InQueueSize       int           `toml:"in_queue_size"`
	OutQueueSize      int           `toml:"out_queue_size"`
	MaxIntentsPerTick int           `toml:"max_intents_per_tick"`
	WriteTimeout      time.Duration `toml:"write_timeout"`
	ReadTimeout       time.Duration `toml:"read_timeout"`
}

type DatabaseConfig struct {
	DSN             string        `toml:"dsn"` // empty = match history disabled
	MaxOpenConns    int           `toml:"max_open_conns"`
	MaxIdleConns    int           `toml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `toml:"conn_max_lifetime"`
}

type RoundConfig struct {
	MaxRounds         int           `toml:"max_rounds"`
	MinPlayersPerSide int           `toml:"min_players_per_side"`
	FreezeTime        time.Duration `toml:"freeze_time"`
	RoundTime         time.Duration `toml:"round_time"`
	RoundEndTime      time.Duration `toml:"round_end_time"`
	BombTime          time.Duration `toml:"bomb_time"`
	PlantTime         time.Duration `toml:"plant_time"`
	DefuseTime        time.Duration `toml:"defuse_time"`
	DefuseRadius      float64       `toml:"defuse_radius"`
	BuyWindow         time.Duration `toml:"buy_window"` // purchase window after freeze time ends
}

type MovementConfig struct {
	RunSpeed        float64 `toml:"run_speed"`
	WalkSpeed       float64 `toml:"walk_speed"`
	CrouchSpeed     float64 `toml:"crouch_speed"`
	Acceleration    float64 `toml:"acceleration"`
	AirAcceleration float64 `toml:"air_acceleration"`
	Friction        float64 `toml:"friction"`
	StopSpeed       float64 `toml:"stop_speed"`
	Gravity         float64 `toml:"gravity"`     // negative, units/s^2
	JumpHeight      float64 `toml:"jump_height"` // apex height in units
	GroundSnap      float64 `toml:"ground_snap"` // residual downward speed kept while grounded
}

type CombatConfig struct {
	SpreadStand      float64       `toml:"spread_stand"` // base spread radii in radians
	SpreadCrouch     float64       `toml:"spread_crouch"`
	SpreadMove       float64       `toml:"spread_move"`
	SpreadAir        float64       `toml:"spread_air"`
	RecoilPerShot    float64       `toml:"recoil_per_shot"`
	RecoilMax        float64       `toml:"recoil_max"`
	RecoilDecay      float64       `toml:"recoil_decay"` // radians/s toward zero after cooldown
	RecoilCooldown   time.Duration `toml:"recoil_cooldown"`
	FirstShotReset   time.Duration `toml:"first_shot_reset"`
	FirstShotFactor  float64       `toml:"first_shot_factor"`
	MoveSpreadThresh float64       `toml:"move_spread_threshold"` // speed above which moving spread applies
}

type EconomyConfig struct {
	StartMoney   int `toml:"start_money"`
	MaxMoney     int `toml:"max_money"`
	KillReward   int `toml:"kill_reward"`
	PlantReward  int `toml:"plant_reward"`
	DefuseReward int `toml:"defuse_reward"`
	ArmorPrice   int `toml:"armor_price"`
}

type DataConfig struct {
	WeaponsPath string `toml:"weapons_path"`
	MapsPath    string `toml:"maps_path"`
	ScriptsPath string `toml:"scripts_path"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Server.StartTime = time.Now().Unix()
	return cfg, nil
}

// Ticks converts a duration into a whole tick count at the configured rate.
// Durations shorter than one tick still cost one tick.
func (c *Config) Ticks(d time.Duration) int {
	if c.Network.TickRate <= 0 {
		return 1
	}
	n := int(d / c.Network.TickRate)
	if n < 1 && d > 0 {
		n = 1
	}
	return n
}

func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Name: "StrikeCore",
			ID:   1,
		},
		Network: NetworkConfig{
			BindAddress:       "0.0.0.0:7100",
			TickRate:          50 * time.Millisecond, // 20 Hz authoritative step
			SnapshotInterval:  2,
			InQueueSize:       256,
			OutQueueSize:      256,
			MaxIntentsPerTick: 4,
			WriteTimeout:      10 * time.Second,
			ReadTimeout:       60 * time.Second,
		},
		Database: DatabaseConfig{
			DSN:             "",
			MaxOpenConns:    10,
			MaxIdleConns:    2,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Round: RoundConfig{
			MaxRounds:         30,
			MinPlayersPerSide: 1,
			FreezeTime:        15 * time.Second,
			RoundTime:         115 * time.Second,
			RoundEndTime:      7 * time.Second,
			BombTime:          40 * time.Second,
			PlantTime:         3 * time.Second,
			DefuseTime:        10 * time.Second,
			DefuseRadius:      2.0,
			BuyWindow:         20 * time.Second,
		},
		Movement: MovementConfig{
			RunSpeed:        6.5,
			WalkSpeed:       4.5,
			CrouchSpeed:     2.5,
			Acceleration:    60.0,
			AirAcceleration: 8.0,
			Friction:        6.0,
			StopSpeed:       0.5,
			Gravity:         -19.6,
			JumpHeight:      1.1,
			GroundSnap:      0.1,
		},
		Combat: CombatConfig{
			SpreadStand:      0.010,
			SpreadCrouch:     0.005,
			SpreadMove:       0.030,
			SpreadAir:        0.080,
			RecoilPerShot:    0.008,
			RecoilMax:        0.060,
			RecoilDecay:      0.120,
			RecoilCooldown:   200 * time.Millisecond,
			FirstShotReset:   time.Second,
			FirstShotFactor:  0.1,
			MoveSpreadThresh: 1.0,
		},
		Economy: EconomyConfig{
			StartMoney:   800,
			MaxMoney:     16000,
			KillReward:   300,
			PlantReward:  300,
			DefuseReward: 300,
			ArmorPrice:   650,
		},
		Data: DataConfig{
			WeaponsPath: "data/yaml/weapons.yaml",
			MapsPath:    "data/yaml/maps.yaml",
			ScriptsPath: "scripts",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
