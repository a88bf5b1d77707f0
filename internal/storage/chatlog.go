package storage

import (
	"fmt"
	"time"
)

// ChatLog is one stored exchange.
type ChatLog struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	SessionID string    `json:"session_id"`
	UserMsg   string    `json:"user_msg"`
	BotReply  string    `json:"bot_reply"`
	Intent    string    `json:"intent"`
	Stage     string    `json:"stage"`
	Sentiment float64   `json:"sentiment"`
}

// IntentCount is one row of the intent frequency aggregate.
type IntentCount struct {
	Intent string `json:"intent"`
	Count  int    `json:"count"`
}

// InsertLog stores one exchange.
func (db *DB) InsertLog(log ChatLog) error {
	_, err := db.conn.Exec(
		`INSERT INTO chat_logs (ts, session_id, user_msg, bot_reply, intent, stage, sentiment)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		log.Timestamp.Unix(), log.SessionID, log.UserMsg, log.BotReply, log.Intent, log.Stage, log.Sentiment,
	)
	if err != nil {
		return fmt.Errorf("failed to insert chat log: %w", err)
	}
	return nil
}

// RecentLogs returns the latest limit exchanges, newest first.
func (db *DB) RecentLogs(limit int) ([]ChatLog, error) {
	rows, err := db.conn.Query(
		`SELECT id, ts, session_id, user_msg, bot_reply, intent, stage, sentiment
		 FROM chat_logs ORDER BY ts DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent logs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var logs []ChatLog
	for rows.Next() {
		var log ChatLog
		var ts int64
		if err := rows.Scan(&log.ID, &ts, &log.SessionID, &log.UserMsg, &log.BotReply, &log.Intent, &log.Stage, &log.Sentiment); err != nil {
			return nil, fmt.Errorf("failed to scan chat log: %w", err)
		}
		log.Timestamp = time.Unix(ts, 0)
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

// AverageSentiment returns the mean compound sentiment over all stored
// exchanges, 0 when the log is empty.
func (db *DB) AverageSentiment() (float64, error) {
	var avg float64
	err := db.conn.QueryRow(`SELECT COALESCE(AVG(sentiment), 0) FROM chat_logs`).Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("failed to compute average sentiment: %w", err)
	}
	return avg, nil
}

// TopIntents returns the n most frequent intents, most frequent first.
// Ties break alphabetically so the output is stable.
func (db *DB) TopIntents(n int) ([]IntentCount, error) {
	rows, err := db.conn.Query(
		`SELECT intent, COUNT(*) AS c FROM chat_logs
		 WHERE intent != ''
		 GROUP BY intent ORDER BY c DESC, intent ASC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query top intents: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var counts []IntentCount
	for rows.Next() {
		var ic IntentCount
		if err := rows.Scan(&ic.Intent, &ic.Count); err != nil {
			return nil, fmt.Errorf("failed to scan intent count: %w", err)
		}
		counts = append(counts, ic)
	}
	return counts, rows.Err()
}

// PruneBefore deletes exchanges older than cutoff and reports how many
// rows went away.
func (db *DB) PruneBefore(cutoff time.Time) (int64, error) {
	res, err := db.conn.Exec(`DELETE FROM chat_logs WHERE ts < ?`, cutoff.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to prune chat logs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned rows: %w", err)
	}
	return n, nil
}

// CountLogs returns the total number of stored exchanges.
func (db *DB) CountLogs() (int, error) {
	var n int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM chat_logs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count chat logs: %w", err)
	}
	return n, nil
}
