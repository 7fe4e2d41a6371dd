package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/relaypair/relay/internal/api"
	"github.com/relaypair/relay/internal/services"
)

// SQLiteStore persists pairs, messages, moods and assessments. Timestamps are
// stored as RFC3339 strings in UTC.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("apply sqlite pragma %q: %w", stmt, err)
		}
	}
	return &SQLiteStore{db: db}, nil
}

func NewStore(db *sql.DB) (api.Store, error) {
	return NewSQLiteStore(db)
}

var _ api.Store = (*SQLiteStore)(nil)

func (s *SQLiteStore) logErr(prefix string, err error) {
	if err != nil {
		log.Printf("sqlite store: %s: %v", prefix, err)
	}
}

func boolToInt64(v bool) int64 {
	if v {
		return 1
	}
	return 0
}

func int64ToBool(v int64) bool { return v != 0 }

func toNullString(s string) sql.NullString {
	if strings.TrimSpace(s) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func toNullStringPtr(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func fromNullStringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

func encodeTime(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }

func decodeTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		log.Printf("sqlite store: decode time %q: %v", s, err)
		return time.Time{}
	}
	return t
}

func toNullTime(t time.Time) sql.NullString {
	if t.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: encodeTime(t), Valid: true}
}

// --- Pairs ---

func (s *SQLiteStore) AddPair(p *services.Pair) {
	_, err := s.db.Exec(`INSERT INTO pairs (pair_id, code_hash, creator_id, creator_name, joiner_id, joiner_name, status, created_at, joined_at)
      VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.PairID, p.CodeHash, p.CreatorID, p.CreatorName,
		toNullString(p.JoinerID), toNullString(p.JoinerName),
		p.Status, encodeTime(p.CreatedAt), toNullTime(p.JoinedAt))
	s.logErr("AddPair", err)
}

func (s *SQLiteStore) GetPair(id string) *services.Pair {
	row := s.db.QueryRow(`SELECT pair_id, code_hash, creator_id, creator_name, joiner_id, joiner_name, status, created_at, joined_at
      FROM pairs WHERE pair_id = ?`, id)
	p, err := scanPair(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		s.logErr("GetPair", err)
		return nil
	}
	return p
}

func (s *SQLiteStore) ListPendingPairs() []*services.Pair {
	rows, err := s.db.Query(`SELECT pair_id, code_hash, creator_id, creator_name, joiner_id, joiner_name, status, created_at, joined_at
      FROM pairs WHERE status = ? ORDER BY pair_id`, services.PairStatusPending)
	if err != nil {
		s.logErr("ListPendingPairs", err)
		return nil
	}
	defer func() { _ = rows.Close() }()
	out := []*services.Pair{}
	for rows.Next() {
		p, err := scanPair(rows)
		if err != nil {
			s.logErr("ListPendingPairs scan", err)
			continue
		}
		out = append(out, p)
	}
	s.logErr("ListPendingPairs rows", rows.Err())
	return out
}

func (s *SQLiteStore) UpdatePair(p *services.Pair) bool {
	res, err := s.db.Exec(`UPDATE pairs SET joiner_id = ?, joiner_name = ?, status = ?, joined_at = ? WHERE pair_id = ?`,
		toNullString(p.JoinerID), toNullString(p.JoinerName), p.Status, toNullTime(p.JoinedAt), p.PairID)
	if err != nil {
		s.logErr("UpdatePair", err)
		return false
	}
	n, err := res.RowsAffected()
	s.logErr("UpdatePair rows", err)
	return n > 0
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPair(r rowScanner) (*services.Pair, error) {
	var p services.Pair
	var joinerID, joinerName, joinedAt sql.NullString
	var createdAt string
	if err := r.Scan(&p.PairID, &p.CodeHash, &p.CreatorID, &p.CreatorName, &joinerID, &joinerName, &p.Status, &createdAt, &joinedAt); err != nil {
		return nil, err
	}
	p.JoinerID = joinerID.String
	p.JoinerName = joinerName.String
	p.CreatedAt = decodeTime(createdAt)
	p.JoinedAt = decodeTime(joinedAt.String)
	return &p, nil
}

// --- Messages ---

func (s *SQLiteStore) AddMessage(m *services.Message) {
	_, err := s.db.Exec(`INSERT INTO messages (id, pair_id, sender_id, raw_text, aligned_text, mood, intensity,
      criticism, defensiveness, contempt, stonewalling, anger_level, suggestion, repair_tag, timestamp)
      VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.PairID, m.SenderID, m.RawText, m.AlignedText, m.Mood, m.Intensity,
		boolToInt64(m.Flags.Criticism), boolToInt64(m.Flags.Defensiveness),
		boolToInt64(m.Flags.Contempt), boolToInt64(m.Flags.Stonewalling), m.Flags.AngerLevel,
		toNullStringPtr(m.Suggestion), toNullStringPtr(m.RepairTag), encodeTime(m.Timestamp))
	s.logErr("AddMessage", err)
}

func (s *SQLiteStore) ListMessagesByPair(pairID string, from, to time.Time) []*services.Message {
	query := `SELECT id, pair_id, sender_id, raw_text, aligned_text, mood, intensity,
      criticism, defensiveness, contempt, stonewalling, anger_level, suggestion, repair_tag, timestamp
      FROM messages WHERE pair_id = ?`
	args := []any{pairID}
	if !from.IsZero() {
		query += " AND timestamp >= ?"
		args = append(args, encodeTime(from))
	}
	if !to.IsZero() {
		query += " AND timestamp <= ?"
		args = append(args, encodeTime(to))
	}
	query += " ORDER BY timestamp"
	rows, err := s.db.Query(query, args...)
	if err != nil {
		s.logErr("ListMessagesByPair", err)
		return nil
	}
	defer func() { _ = rows.Close() }()
	out := []*services.Message{}
	for rows.Next() {
		var m services.Message
		var criticism, defensiveness, contempt, stonewalling int64
		var suggestion, repairTag sql.NullString
		var ts string
		if err := rows.Scan(&m.ID, &m.PairID, &m.SenderID, &m.RawText, &m.AlignedText, &m.Mood, &m.Intensity,
			&criticism, &defensiveness, &contempt, &stonewalling, &m.Flags.AngerLevel,
			&suggestion, &repairTag, &ts); err != nil {
			s.logErr("ListMessagesByPair scan", err)
			continue
		}
		m.Flags.Criticism = int64ToBool(criticism)
		m.Flags.Defensiveness = int64ToBool(defensiveness)
		m.Flags.Contempt = int64ToBool(contempt)
		m.Flags.Stonewalling = int64ToBool(stonewalling)
		m.Suggestion = fromNullStringPtr(suggestion)
		m.RepairTag = fromNullStringPtr(repairTag)
		m.Timestamp = decodeTime(ts)
		out = append(out, &m)
	}
	s.logErr("ListMessagesByPair rows", rows.Err())
	return out
}

// --- Mood pings ---

func (s *SQLiteStore) AddMoodPing(m *services.MoodPing) {
	_, err := s.db.Exec(`INSERT INTO mood_pings (id, pair_id, user_id, mood_emoji, mood_value, intensity, tag, timestamp)
      VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.PairID, m.UserID, m.MoodEmoji, m.MoodValue, m.Intensity, toNullString(m.Tag), encodeTime(m.Timestamp))
	s.logErr("AddMoodPing", err)
}

func (s *SQLiteStore) ListMoodPingsByPair(pairID string, from, to time.Time) []*services.MoodPing {
	query := `SELECT id, pair_id, user_id, mood_emoji, mood_value, intensity, tag, timestamp
      FROM mood_pings WHERE pair_id = ?`
	args := []any{pairID}
	if !from.IsZero() {
		query += " AND timestamp >= ?"
		args = append(args, encodeTime(from))
	}
	if !to.IsZero() {
		query += " AND timestamp <= ?"
		args = append(args, encodeTime(to))
	}
	query += " ORDER BY timestamp"
	rows, err := s.db.Query(query, args...)
	if err != nil {
		s.logErr("ListMoodPingsByPair", err)
		return nil
	}
	defer func() { _ = rows.Close() }()
	out := []*services.MoodPing{}
	for rows.Next() {
		var m services.MoodPing
		var tag sql.NullString
		var ts string
		if err := rows.Scan(&m.ID, &m.PairID, &m.UserID, &m.MoodEmoji, &m.MoodValue, &m.Intensity, &tag, &ts); err != nil {
			s.logErr("ListMoodPingsByPair scan", err)
			continue
		}
		m.Tag = tag.String
		m.Timestamp = decodeTime(ts)
		out = append(out, &m)
	}
	s.logErr("ListMoodPingsByPair rows", rows.Err())
	return out
}

// --- Need assessments ---

func (s *SQLiteStore) SaveAssessment(a *services.NeedAssessment) {
	responses, err := encodeResponses(a.Responses)
	if err != nil {
		s.logErr("SaveAssessment encode", err)
		return
	}
	_, err = s.db.Exec(`INSERT INTO need_assessments (pair_id, user_id, perspective, responses, completed_at)
      VALUES (?, ?, ?, ?, ?)
      ON CONFLICT(pair_id, user_id, perspective) DO UPDATE SET responses = excluded.responses, completed_at = excluded.completed_at`,
		a.PairID, a.UserID, a.Perspective, responses, encodeTime(a.CompletedAt))
	s.logErr("SaveAssessment", err)
}

func (s *SQLiteStore) GetAssessment(pairID, userID, perspective string) *services.NeedAssessment {
	row := s.db.QueryRow(`SELECT pair_id, user_id, perspective, responses, completed_at
      FROM need_assessments WHERE pair_id = ? AND user_id = ? AND perspective = ?`, pairID, userID, perspective)
	var a services.NeedAssessment
	var responses, completedAt string
	err := row.Scan(&a.PairID, &a.UserID, &a.Perspective, &responses, &completedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		s.logErr("GetAssessment", err)
		return nil
	}
	a.Responses = decodeResponses(responses)
	a.CompletedAt = decodeTime(completedAt)
	return &a
}

func encodeResponses(responses []services.NeedResponse) (string, error) {
	b, err := json.Marshal(responses)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeResponses(s string) []services.NeedResponse {
	if s == "" {
		return nil
	}
	var out []services.NeedResponse
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		log.Printf("sqlite store: decode responses: %v", err)
		return nil
	}
	return out
}

// --- Audit ---

func (s *SQLiteStore) AddAudit(e services.AuditEntry) {
	_, err := s.db.Exec(`INSERT INTO audit_log (time, actor, action, target, note) VALUES (?, ?, ?, ?, ?)`,
		encodeTime(e.Time), e.Actor, e.Action, e.Target, toNullString(e.Note))
	s.logErr("AddAudit", err)
}

func (s *SQLiteStore) ListAudit() []services.AuditEntry {
	rows, err := s.db.Query(`SELECT time, actor, action, target, note FROM audit_log ORDER BY time`)
	if err != nil {
		s.logErr("ListAudit", err)
		return nil
	}
	defer func() { _ = rows.Close() }()
	out := []services.AuditEntry{}
	for rows.Next() {
		var e services.AuditEntry
		var ts string
		var note sql.NullString
		if err := rows.Scan(&ts, &e.Actor, &e.Action, &e.Target, &note); err != nil {
			s.logErr("ListAudit scan", err)
			continue
		}
		e.Time = decodeTime(ts)
		e.Note = note.String
		out = append(out, e)
	}
	s.logErr("ListAudit rows", rows.Err())
	return out
}
