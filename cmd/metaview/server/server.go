// Package server assembles the service: configuration, access control, the
// metadata enumerators, and the wire protocol listener.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/metaview-project/metaview/cmd/metaview/acl"
	"github.com/metaview-project/metaview/cmd/metaview/config"
	"github.com/metaview-project/metaview/cmd/metaview/dbx"
	"github.com/metaview-project/metaview/cmd/metaview/etype"
	"github.com/metaview-project/metaview/cmd/metaview/libpq"
	"github.com/metaview-project/metaview/cmd/metaview/log"
	"github.com/metaview-project/metaview/cmd/metaview/metadata"
	"github.com/metaview-project/metaview/cmd/metaview/option"
	"github.com/metaview-project/metaview/cmd/metaview/pgcatalog"
)

func Start(opt *option.Server) error {
	cfg, err := config.Load(opt.ConfigFile)
	if err != nil {
		return err
	}
	access, err := buildAccessControl(cfg)
	if err != nil {
		return err
	}
	enumerator, err := buildEnumerator(cfg, access)
	if err != nil {
		return err
	}

	listen := cfg.Listen
	if opt.Listen != "" {
		listen = opt.Listen
	}
	port := cfg.Port
	if opt.Port != "" {
		port = opt.Port
	}

	handler := libpq.NewHandler(enumerator)
	errs := make(chan error, 1)
	go func() {
		errs <- libpq.Listen(listen, port, handler)
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGTERM, syscall.SIGINT)
	select {
	case err := <-errs:
		return err
	case sig := <-signals:
		log.Info("received signal %v, shutting down", sig)
		return nil
	}
}

func buildAccessControl(cfg *config.Config) (acl.AccessControl, error) {
	if len(cfg.Grants) == 0 {
		return acl.AllowAll(), nil
	}
	grants := make([]acl.Grant, 0, len(cfg.Grants))
	for _, g := range cfg.Grants {
		grants = append(grants, acl.Grant{User: g.User, Catalog: g.Catalog, Schema: g.Schema})
	}
	return acl.NewGrants(grants)
}

func buildEnumerator(cfg *config.Config, access acl.AccessControl) (metadata.Enumerator, error) {
	var enumerators []metadata.Enumerator
	if len(cfg.Catalogs) > 0 {
		registry := metadata.NewRegistry(access)
		for _, catalog := range cfg.Catalogs {
			for _, table := range catalog.Tables {
				for _, column := range table.Columns {
					registry.AddColumn(catalog.Name, table.Schema, table.Name, metadata.ColumnMetadata{
						Name:    column.Name,
						Type:    etype.ParseType(column.Type),
						Hidden:  column.Hidden,
						Comment: column.Comment,
					})
				}
			}
		}
		enumerators = append(enumerators, registry)
	}
	for _, database := range cfg.Databases {
		if database.Catalog == "" {
			return nil, fmt.Errorf("database entry without catalog name")
		}
		db, err := dbx.NewDB(database.URI)
		if err != nil {
			return nil, fmt.Errorf("catalog %q: %v", database.Catalog, err)
		}
		pool, err := db.Connect(context.Background())
		if err != nil {
			return nil, fmt.Errorf("catalog %q: %v", database.Catalog, err)
		}
		log.Info("catalog %q connected to database %q", database.Catalog, db.DBName)
		enumerators = append(enumerators, pgcatalog.New(database.Catalog, pool, access))
	}
	if len(enumerators) == 0 {
		log.Warning("no catalogs configured")
	}
	return metadata.Combine(enumerators...), nil
}
