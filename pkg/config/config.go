package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "ATTEND"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv   = "ATTEND_APP_ENV"
	EnvPort     = "ATTEND_APP_PORT"
	EnvDBDSN    = "ATTEND_DB_DSN"
	EnvDBHost   = "ATTEND_DB_HOST"
	EnvDBUser   = "ATTEND_DB_USER"
	EnvDBName   = "ATTEND_DB_NAME"
	EnvRedisURL = "ATTEND_REDIS_URL"

	EnvJWTSecret  = "ATTEND_JWT_SECRET"
	EnvJWTIssuer  = "ATTEND_JWT_ISSUER"
	EnvJWTExpMins = "ATTEND_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	Mail         MailConfig
	Attendance   AttendanceConfig
	Bootstrap    BootstrapConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if !cfg.FeatureFlags.UseSQLite {
		if err := cfg.DB.ensureDSN(); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"ATTEND_APP_ENV" required:"true"`
	Port         string `envconfig:"ATTEND_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"ATTEND_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ATTEND_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"ATTEND_DB_DSN"`
	Driver string `envconfig:"ATTEND_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"ATTEND_DB_HOST"`
	LegacyPort     int    `envconfig:"ATTEND_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"ATTEND_DB_USER"`
	LegacyPassword string `envconfig:"ATTEND_DB_PASSWORD"`
	LegacyName     string `envconfig:"ATTEND_DB_NAME"`
	LegacySSLMode  string `envconfig:"ATTEND_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"ATTEND_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ATTEND_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ATTEND_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ATTEND_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"ATTEND_REDIS_URL" required:"true"`
	Address      string        `envconfig:"ATTEND_REDIS_ADDR"`
	Password     string        `envconfig:"ATTEND_REDIS_PASSWORD"`
	DB           int           `envconfig:"ATTEND_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ATTEND_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ATTEND_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ATTEND_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ATTEND_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ATTEND_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"ATTEND_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"ATTEND_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"ATTEND_JWT_EXPIRATION_MINUTES" default:"720"`
	SessionTTLMinutes int    `envconfig:"ATTEND_SESSION_TTL_MINUTES" default:"720"`
}

// SessionTTL returns how long a login session stays valid server-side.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.SessionTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"ATTEND_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"ATTEND_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"ATTEND_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"ATTEND_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"ATTEND_ARGON_KEY_LEN" default:"32"`
}

type MailConfig struct {
	Enabled  bool   `envconfig:"ATTEND_MAIL_ENABLED" default:"false"`
	Host     string `envconfig:"ATTEND_MAIL_HOST" default:"smtp.gmail.com"`
	Port     int    `envconfig:"ATTEND_MAIL_PORT" default:"587"`
	Username string `envconfig:"ATTEND_MAIL_USERNAME"`
	Password string `envconfig:"ATTEND_MAIL_PASSWORD"`
	From     string `envconfig:"ATTEND_MAIL_FROM" default:"noreply@attendance.com"`
}

// AttendanceConfig carries the check-in policy knobs.
type AttendanceConfig struct {
	// AllowShiftReopen permits a second check-in on a day whose shift was
	// already completed, clearing the previous check-out.
	AllowShiftReopen    bool `envconfig:"ATTEND_ALLOW_SHIFT_REOPEN" default:"true"`
	EarlyCheckInMinutes int  `envconfig:"ATTEND_EARLY_CHECK_IN_MINUTES" default:"30"`
	RecordsPerPage      int  `envconfig:"ATTEND_RECORDS_PER_PAGE" default:"10"`
	AdminRecordsPerPage int  `envconfig:"ATTEND_ADMIN_RECORDS_PER_PAGE" default:"15"`
	EmployeeListPerPage int  `envconfig:"ATTEND_EMPLOYEE_LIST_PER_PAGE" default:"10"`
}

// BootstrapConfig describes the default admin account ensured at startup.
type BootstrapConfig struct {
	AdminUsername   string `envconfig:"ATTEND_ADMIN_USERNAME" default:"admin"`
	AdminEmail      string `envconfig:"ATTEND_ADMIN_EMAIL" default:"admin@attendance.com"`
	AdminPassword   string `envconfig:"ATTEND_ADMIN_PASSWORD" default:"admin123"`
	AdminFullName   string `envconfig:"ATTEND_ADMIN_FULL_NAME" default:"Administrator"`
	AdminDepartment string `envconfig:"ATTEND_ADMIN_DEPARTMENT" default:"HR"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool   `envconfig:"ATTEND_USE_SQLITE" default:"false"`
	SQLitePath  string `envconfig:"ATTEND_SQLITE_PATH" default:"attendance.db"`
	AutoMigrate bool   `envconfig:"ATTEND_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
