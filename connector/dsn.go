package connector

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// dsnBuilder assembles URL-style connection strings.
type dsnBuilder struct {
	scheme   string
	username string
	password string
	host     string
	port     int
	database string
	params   map[string]string
}

func newDSNBuilder(scheme string) *dsnBuilder {
	return &dsnBuilder{scheme: scheme, params: make(map[string]string)}
}

func (b *dsnBuilder) auth(username, password string) *dsnBuilder {
	b.username = username
	b.password = password
	return b
}

func (b *dsnBuilder) address(host string, port int) *dsnBuilder {
	b.host = host
	b.port = port
	return b
}

func (b *dsnBuilder) db(name string) *dsnBuilder {
	b.database = name
	return b
}

func (b *dsnBuilder) param(key, value string) *dsnBuilder {
	if value != "" {
		b.params[key] = value
	}
	return b
}

func (b *dsnBuilder) extra(params map[string]string) *dsnBuilder {
	for k, v := range params {
		if v != "" {
			b.params[k] = v
		}
	}
	return b
}

func (b *dsnBuilder) build() string {
	var dsn strings.Builder
	dsn.WriteString(b.scheme)
	dsn.WriteString("://")

	if b.username != "" {
		dsn.WriteString(url.QueryEscape(b.username))
		if b.password != "" {
			dsn.WriteString(":")
			dsn.WriteString(url.QueryEscape(b.password))
		}
		dsn.WriteString("@")
	}

	dsn.WriteString(b.host)
	if b.port > 0 {
		dsn.WriteString(":")
		dsn.WriteString(strconv.Itoa(b.port))
	}

	if b.database != "" {
		dsn.WriteString("/")
		dsn.WriteString(url.PathEscape(b.database))
	}

	if len(b.params) > 0 {
		keys := make([]string, 0, len(b.params))
		for k := range b.params {
			keys = append(keys, k)
		}
		// stable order so the same config always yields the same DSN
		sort.Strings(keys)
		for i, key := range keys {
			if i == 0 {
				dsn.WriteString("?")
			} else {
				dsn.WriteString("&")
			}
			dsn.WriteString(url.QueryEscape(key))
			dsn.WriteString("=")
			dsn.WriteString(url.QueryEscape(b.params[key]))
		}
	}

	return dsn.String()
}
