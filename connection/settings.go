// Package connection provides connection settings and the single live
// database handle used by the ORM.
package connection

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sort"
	"strconv"
	"strings"

	"github.com/satishbabariya/pure-orm/driver"
	"github.com/satishbabariya/pure-orm/driver/mysql"
	"github.com/satishbabariya/pure-orm/driver/sqlite"
	"github.com/satishbabariya/pure-orm/runtime/types"
)

// Defaults applied when a setting is left empty.
const (
	DefaultHost      = "localhost"
	DefaultCharset   = "utf8"
	DefaultFilename  = "db.sqlite"
	DefaultMySQLPort = 3306
)

// Setting keys accepted by Set, Get and FromMap.
const (
	KeyType     = "type"
	KeyHost     = "host"
	KeyPort     = "port"
	KeyName     = "name"
	KeyUsername = "username"
	KeyPassword = "password"
	KeyFilename = "filename"
	KeyCharset  = "charset"
	KeyOptions  = "options"
)

var (
	// ErrUnknownSetting is returned for keys that are not connection settings.
	ErrUnknownSetting = errors.New("connection: unknown setting")
	// ErrInvalidSetting is returned when a value has the wrong shape.
	ErrInvalidSetting = errors.New("connection: invalid setting value")
)

var knownKeys = map[string]struct{}{
	KeyType: {}, KeyHost: {}, KeyPort: {}, KeyName: {}, KeyUsername: {},
	KeyPassword: {}, KeyFilename: {}, KeyCharset: {}, KeyOptions: {},
}

// Settings describes how to reach a database. The zero value targets a
// MySQL server on localhost.
type Settings struct {
	Type     driver.Dialect
	Host     string
	Port     int
	Name     string
	Username string
	Password string
	// Filename is the database file of embedded engines.
	Filename string
	Charset  string
	// Options are passed to the engine driver as DSN parameters.
	Options map[string]string
}

// FromMap builds Settings from a generic map such as a decoded config file.
// Unknown keys are rejected.
func FromMap(m map[string]any) (*Settings, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s := &Settings{}
	for _, k := range keys {
		if err := s.Set(k, m[k]); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Set assigns a setting by name.
func (s *Settings) Set(key string, value any) error {
	key = strings.ToLower(strings.TrimSpace(key))
	if _, ok := knownKeys[key]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSetting, key)
	}

	if key == KeyOptions {
		opts, err := toOptions(value)
		if err != nil {
			return err
		}
		s.Options = opts
		return nil
	}

	v := types.ValueOf(value)
	switch key {
	case KeyType:
		s.Type = driver.Dialect(strings.ToLower(v.String()))
	case KeyHost:
		s.Host = v.String()
	case KeyPort:
		if v.Kind() == types.Bool {
			return fmt.Errorf("%w: port must be a number", ErrInvalidSetting)
		}
		if v.Kind() == types.String {
			p, err := strconv.Atoi(strings.TrimSpace(v.String()))
			if err != nil {
				return fmt.Errorf("%w: port %q", ErrInvalidSetting, v.String())
			}
			s.Port = p
			return nil
		}
		s.Port = int(v.Int())
	case KeyName:
		s.Name = v.String()
	case KeyUsername:
		s.Username = v.String()
	case KeyPassword:
		s.Password = v.String()
	case KeyFilename:
		s.Filename = v.String()
	case KeyCharset:
		s.Charset = v.String()
	}
	return nil
}

// Get returns a scalar setting by name. Options are read with Option.
func (s *Settings) Get(key string) (types.Value, error) {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case KeyType:
		return types.StringValue(string(s.Dialect())), nil
	case KeyHost:
		return types.StringValue(s.Host), nil
	case KeyPort:
		return types.IntValue(int64(s.Port)), nil
	case KeyName:
		return types.StringValue(s.Name), nil
	case KeyUsername:
		return types.StringValue(s.Username), nil
	case KeyPassword:
		return types.StringValue(s.Password), nil
	case KeyFilename:
		return types.StringValue(s.Filename), nil
	case KeyCharset:
		return types.StringValue(s.Charset), nil
	case KeyOptions:
		return types.Value{}, fmt.Errorf("%w: options is not a scalar, use Option", ErrInvalidSetting)
	default:
		return types.Value{}, fmt.Errorf("%w: %q", ErrUnknownSetting, key)
	}
}

// Option returns a driver option.
func (s *Settings) Option(name string) (string, bool) {
	v, ok := s.Options[name]
	return v, ok
}

// Dialect returns the configured engine, MySQL when unset.
func (s *Settings) Dialect() driver.Dialect {
	if s.Type == "" {
		return driver.MySQL
	}
	return s.Type
}

// Validate checks that the settings name a registered engine.
func (s *Settings) Validate() error {
	if _, err := driver.Lookup(s.Dialect()); err != nil {
		return err
	}
	return nil
}

func (s *Settings) host() string {
	if s.Host == "" {
		return DefaultHost
	}
	return s.Host
}

func (s *Settings) filename() string {
	if s.Filename == "" {
		return DefaultFilename
	}
	return s.Filename
}

func (s *Settings) charset() string {
	if s.Charset == "" {
		return DefaultCharset
	}
	return s.Charset
}

// ConnectionString renders the engine-prefixed connection string:
// "sqlite:<file>;charset=<cs>" for embedded engines and
// "mysql:host=<h>;dbname=<d>;charset=<cs>" otherwise.
func (s *Settings) ConnectionString() string {
	var b strings.Builder
	d := s.Dialect()
	b.WriteString(string(d))

	if d.Embedded() {
		b.WriteString(":")
		b.WriteString(s.filename())
	} else {
		b.WriteString(":host=")
		b.WriteString(s.host())
		b.WriteString(";dbname=")
		b.WriteString(s.Name)
	}

	b.WriteString(";charset=")
	b.WriteString(s.charset())
	return b.String()
}

// DSN renders the data source name understood by the Go driver of the
// configured engine.
func (s *Settings) DSN() string {
	if s.Dialect().Embedded() {
		return sqlite.FormatDSN(s.filename(), s.Options)
	}

	port := s.Port
	if port == 0 {
		port = DefaultMySQLPort
	}
	addr := net.JoinHostPort(s.host(), strconv.Itoa(port))
	return mysql.FormatDSN(s.Username, s.Password, addr, s.Name, s.charset(), s.Options)
}

// JSON renders the settings as JSON with the password masked.
func (s *Settings) JSON() ([]byte, error) {
	out := map[string]any{
		KeyType:    string(s.Dialect()),
		KeyCharset: s.charset(),
	}
	if s.Dialect().Embedded() {
		out[KeyFilename] = s.filename()
	} else {
		out[KeyHost] = s.host()
		out[KeyName] = s.Name
		if s.Port != 0 {
			out[KeyPort] = s.Port
		}
		if s.Username != "" {
			out[KeyUsername] = s.Username
		}
		if s.Password != "" {
			out[KeyPassword] = "****"
		}
	}
	if len(s.Options) > 0 {
		out[KeyOptions] = s.Options
	}
	return json.Marshal(out)
}

// String returns the connection string.
func (s *Settings) String() string {
	return s.ConnectionString()
}

func toOptions(value any) (map[string]string, error) {
	switch opts := value.(type) {
	case nil:
		return nil, nil
	case map[string]string:
		out := make(map[string]string, len(opts))
		for k, v := range opts {
			out[k] = v
		}
		return out, nil
	case map[string]any:
		out := make(map[string]string, len(opts))
		for k, v := range opts {
			out[k] = types.ValueOf(v).Literal()
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: options must be a map, got %T", ErrInvalidSetting, value)
	}
}
