package database

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Noms des drivers supportés (valeurs de DB_DRIVER)
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverPGX      = "pgx"
)

// Dialect regroupe les différences de SQL entre PostgreSQL et SQLite.
// Toutes les requêtes utilisent des placeholders $n, acceptés par les trois drivers.
type Dialect struct {
	driver string
	sqlite bool
}

// DialectFor retourne le dialecte associé à un nom de driver
func DialectFor(driver string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverSQLite:
		return Dialect{driver: DriverSQLite, sqlite: true}, nil
	case DriverPostgres:
		return Dialect{driver: DriverPostgres}, nil
	case DriverPGX:
		return Dialect{driver: DriverPGX}, nil
	default:
		return Dialect{}, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// DriverName retourne le nom enregistré auprès de database/sql
func (d Dialect) DriverName() string {
	return d.driver
}

// IsSQLite indique si la base est SQLite
func (d Dialect) IsSQLite() bool {
	return d.sqlite
}

// StringAgg concatène les valeurs non nulles d'un groupe avec un séparateur,
// dans l'ordre de orderBy si fourni
func (d Dialect) StringAgg(expr, separator, orderBy string) string {
	args := expr + ", '" + strings.ReplaceAll(separator, "'", "''") + "'"
	if orderBy != "" {
		args += " ORDER BY " + orderBy
	}
	if d.sqlite {
		return "GROUP_CONCAT(" + args + ")"
	}
	return "STRING_AGG(" + args + ")"
}

// DateText formate une colonne date en texte YYYY-MM-DD
func (d Dialect) DateText(expr string) string {
	if d.sqlite {
		return "strftime('%Y-%m-%d', " + expr + ")"
	}
	return "TO_CHAR(" + expr + ", 'YYYY-MM-DD')"
}

// SQLiteDSN construit la chaîne de connexion modernc (clés étrangères, WAL, busy timeout)
func SQLiteDSN(path string, busyTimeout time.Duration) string {
	params := url.Values{}
	params.Add("_pragma", "foreign_keys(1)")
	params.Add("_pragma", "journal_mode(WAL)")
	params.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busyTimeout.Milliseconds()))
	params.Set("_txlock", "immediate")
	return "file:" + path + "?" + params.Encode()
}

// PostgresDSN construit une chaîne de connexion clé=valeur, comprise par lib/pq et pgx
func PostgresDSN(host, port, user, password, dbname, sslmode string) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)
}
