// Package libpq serves the virtual system tables over the PostgreSQL wire
// protocol, so that any libpq-compatible client can introspect the engine's
// catalogs with plain SELECT statements.
package libpq

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"syscall"

	"github.com/jackc/pgx/v5/pgproto3"
	"github.com/metaview-project/metaview/cmd/metaview/dberr"
	"github.com/metaview-project/metaview/cmd/metaview/etype"
	"github.com/metaview-project/metaview/cmd/metaview/jdbc"
	"github.com/metaview-project/metaview/cmd/metaview/log"
	"github.com/metaview-project/metaview/cmd/metaview/metadata"
	"github.com/metaview-project/metaview/cmd/metaview/recordset"
	"github.com/metaview-project/metaview/cmd/metaview/session"
)

const (
	oidText = 25
	oidInt8 = 20
)

// Handler owns the virtual tables served to clients.
type Handler struct {
	tables map[string]jdbc.Table
	names  []string
}

func NewHandler(enumerator metadata.Enumerator) *Handler {
	h := &Handler{tables: make(map[string]jdbc.Table)}
	for _, t := range []jdbc.Table{
		jdbc.NewCatalogsTable(enumerator),
		jdbc.NewSchemasTable(enumerator),
		jdbc.NewTablesTable(enumerator),
		jdbc.NewColumnsTable(enumerator),
	} {
		name := t.Metadata().Name()
		h.tables[name] = t
		h.names = append(h.names, name)
	}
	return h
}

func Listen(host, port string, h *Handler) error {
	var ln net.Listener
	var err error
	if host == "" {
		addr := "/tmp/.s.PGSQL." + port
		log.Info("listening on Unix socket %q", addr)
		_ = syscall.Unlink(addr)
		ln, err = net.Listen("unix", addr)
	} else {
		log.Info("listening on address %q, port %s", host, port)
		ln, err = net.Listen("tcp", net.JoinHostPort(host, port))
	}
	if err != nil {
		return err
	}
	log.Info("server is ready to accept connections")
	for {
		conn, err := ln.Accept()
		if err != nil {
			log.Error("accepting connection: %v", err)
			continue
		}
		backend := pgproto3.NewBackend(conn, conn)
		log.Trace("connection received")
		go serve(conn, backend, h)
	}
}

func serve(conn net.Conn, backend *pgproto3.Backend, h *Handler) {
	defer func() {
		_ = conn.Close()
	}()
	sess, err := startup(conn, backend)
	if err != nil {
		log.Info("connection startup: %v", err)
		return
	}
	log.Trace("session %s started for user %q", sess.ID, sess.User)
	for {
		msg, err := backend.Receive()
		if err != nil {
			return
		}
		switch m := msg.(type) {
		case *pgproto3.Query:
			if err = processQuery(conn, m, h, sess); err != nil {
				log.Info("%v", err)
				return
			}
		case *pgproto3.Sync:
			continue
		case *pgproto3.Terminate:
			return
		default:
			log.Info("unknown message: %v", msg)
			return
		}
	}
}

func startup(conn net.Conn, backend *pgproto3.Backend) (*session.Session, error) {
	msg, err := backend.ReceiveStartupMessage()
	if err != nil {
		return nil, err
	}
	switch m := msg.(type) {
	case *pgproto3.SSLRequest:
		if _, err = conn.Write([]byte("N")); err != nil {
			return nil, err
		}
		return startup(conn, backend)
	case *pgproto3.StartupMessage:
		if err = handleStartup(conn); err != nil {
			return nil, err
		}
		source := m.Parameters["application_name"]
		if source == "" {
			source = conn.RemoteAddr().String()
		}
		return session.New(m.Parameters["user"], source), nil
	default:
		return nil, fmt.Errorf("unknown startup message: %v", msg)
	}
}

func handleStartup(conn net.Conn) error {
	buffer, err := encode(nil, []pgproto3.Message{
		&pgproto3.AuthenticationOk{},
		&pgproto3.ParameterStatus{Name: "server_version", Value: "14.3.0"},
		&pgproto3.ReadyForQuery{TxStatus: 'I'},
	})
	if err != nil {
		return err
	}
	return write(conn, buffer)
}

func processQuery(conn net.Conn, query *pgproto3.Query, h *Handler, sess *session.Session) error {
	log.Trace("query received: %q", query.String)
	node, err := parseQuery(query.String)
	if err == nil {
		switch n := node.(type) {
		case *selectStmt:
			err = h.selectTable(conn, n, sess)
		case *listStmt:
			err = h.listTables(conn)
		default:
			err = fmt.Errorf("unsupported statement")
		}
	}
	if err != nil {
		log.Error("%v: %s", err, query.String)
		hint := ""
		if e, ok := err.(*dberr.Error); ok {
			hint = e.Hint
		}
		buffer, encErr := encode(nil, []pgproto3.Message{
			&pgproto3.ErrorResponse{Severity: "ERROR", Message: err.Error(), Hint: hint},
			&pgproto3.ReadyForQuery{TxStatus: 'I'},
		})
		if encErr != nil {
			return encErr
		}
		return write(conn, buffer)
	}
	return nil
}

func (h *Handler) selectTable(conn net.Conn, stmt *selectStmt, sess *session.Session) error {
	name := stmt.schema + "." + stmt.table
	table, ok := h.tables[name]
	if !ok {
		return &dberr.Error{
			Err:  fmt.Errorf("relation %q does not exist", name),
			Hint: "Run LIST TABLES to see the available tables.",
		}
	}
	tm := table.Metadata()
	constraint, err := stmt.constraint(tm)
	if err != nil {
		return err
	}
	cursor, err := table.Cursor(context.TODO(), sess, constraint)
	if err != nil {
		return err
	}
	defer cursor.Close()

	m := []pgproto3.Message{rowDescription(tm)}
	count := int64(0)
	for cursor.Next() {
		if stmt.limit != nil && count >= *stmt.limit {
			break
		}
		if !stmt.matches(cursor, tm) {
			continue
		}
		m = append(m, dataRow(cursor, tm))
		count++
	}
	m = append(m,
		&pgproto3.CommandComplete{CommandTag: []byte(fmt.Sprintf("SELECT %d", count))},
		&pgproto3.ReadyForQuery{TxStatus: 'I'})
	buffer, err := encode(nil, m)
	if err != nil {
		return err
	}
	return write(conn, buffer)
}

func (h *Handler) listTables(conn net.Conn) error {
	m := []pgproto3.Message{
		&pgproto3.RowDescription{Fields: []pgproto3.FieldDescription{
			textField("table_name"),
		}},
	}
	for _, name := range h.names {
		m = append(m, &pgproto3.DataRow{Values: [][]byte{[]byte(name)}})
	}
	m = append(m,
		&pgproto3.CommandComplete{CommandTag: []byte(fmt.Sprintf("SELECT %d", len(h.names)))},
		&pgproto3.ReadyForQuery{TxStatus: 'I'})
	buffer, err := encode(nil, m)
	if err != nil {
		return err
	}
	return write(conn, buffer)
}

func rowDescription(tm *recordset.TableMetadata) *pgproto3.RowDescription {
	desc := &pgproto3.RowDescription{}
	for _, col := range tm.Columns {
		f := textField(col.Name)
		if col.Type.Family() == etype.Bigint {
			f.DataTypeOID = oidInt8
			f.DataTypeSize = 8
		}
		desc.Fields = append(desc.Fields, f)
	}
	return desc
}

func textField(name string) pgproto3.FieldDescription {
	return pgproto3.FieldDescription{
		Name:                 []byte(name),
		TableOID:             0,
		TableAttributeNumber: 0,
		DataTypeOID:          oidText,
		DataTypeSize:         -1,
		TypeModifier:         -1,
		Format:               0,
	}
}

func dataRow(cursor *recordset.Cursor, tm *recordset.TableMetadata) *pgproto3.DataRow {
	row := &pgproto3.DataRow{Values: make([][]byte, len(tm.Columns))}
	for i, col := range tm.Columns {
		if cursor.IsNull(i) {
			row.Values[i] = nil
			continue
		}
		if col.Type.Family() == etype.Bigint {
			row.Values[i] = []byte(strconv.FormatInt(cursor.Int64(i), 10))
		} else {
			row.Values[i] = []byte(cursor.String(i))
		}
	}
	return row
}

func encode(buffer []byte, messages []pgproto3.Message) ([]byte, error) {
	var err error
	for _, m := range messages {
		if buffer, err = m.Encode(buffer); err != nil {
			return nil, fmt.Errorf("encoding message: %w", err)
		}
	}
	return buffer, nil
}

func write(conn net.Conn, buffer []byte) error {
	if len(buffer) == 0 {
		return nil
	}
	if _, err := conn.Write(buffer); err != nil {
		return err
	}
	return nil
}
