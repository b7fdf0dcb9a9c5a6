package db

import "time"

// Config holds connection settings for the reporting database.
type Config struct {
	Type     string
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string

	MaxIdleConn     int
	MaxOpenConn     int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

func (c Config) withPoolDefaults() Config {
	if c.MaxIdleConn <= 0 {
		c.MaxIdleConn = 5
	}
	if c.MaxOpenConn <= 0 {
		c.MaxOpenConn = 25
	}
	if c.ConnMaxLifetime <= 0 {
		c.ConnMaxLifetime = 30 * time.Minute
	}
	if c.ConnMaxIdleTime <= 0 {
		c.ConnMaxIdleTime = 5 * time.Minute
	}
	return c
}
