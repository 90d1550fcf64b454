// Package database brings up the local MariaDB server and makes sure the
// project database exists with the configured root password.
//
// Administrative statements go through an Admin. CLIAdmin shells out to
// the mariadb client under sudo, which works on a fresh install where
// root authenticates over the unix socket. SocketAdmin talks to the
// server directly with database/sql and is meant for reruns once the
// root password is set, or for archup running as root.
package database
