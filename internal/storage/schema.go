package storage

import (
	"database/sql"
	"fmt"
)

// InitSchema creates the chat log tables and indexes if they do not exist.
func InitSchema(conn *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS chat_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		ts INTEGER NOT NULL,
		session_id TEXT NOT NULL,
		user_msg TEXT NOT NULL,
		bot_reply TEXT NOT NULL,
		intent TEXT NOT NULL,
		stage TEXT NOT NULL,
		sentiment REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_chat_logs_ts ON chat_logs(ts);
	CREATE INDEX IF NOT EXISTS idx_chat_logs_session ON chat_logs(session_id);
	CREATE INDEX IF NOT EXISTS idx_chat_logs_intent ON chat_logs(intent);
	`
	if _, err := conn.Exec(schema); err != nil {
		return fmt.Errorf("failed to create chat_logs schema: %w", err)
	}
	return nil
}
