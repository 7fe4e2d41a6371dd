package services

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"
)

// ExportMoodsCSV renders mood pings into a long-format CSV.
func ExportMoodsCSV(pings []*MoodPing) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	_ = w.Write([]string{"id", "user_id", "mood", "mood_value", "intensity", "tag", "timestamp"})
	for _, p := range pings {
		rec := []string{
			p.ID,
			p.UserID,
			p.MoodEmoji,
			p.MoodValue,
			strconv.Itoa(p.Intensity),
			p.Tag,
			p.Timestamp.Format(time.RFC3339),
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// ExportMessagesCSV renders messages into a long-format CSV. Raw text is
// deliberately excluded; only the aligned text leaves the system.
func ExportMessagesCSV(messages []*Message) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	_ = w.Write([]string{"id", "sender_id", "aligned_text", "mood", "intensity", "criticism", "defensiveness", "contempt", "stonewalling", "anger_level", "repair_tag", "timestamp"})
	for _, m := range messages {
		repair := ""
		if m.RepairTag != nil {
			repair = *m.RepairTag
		}
		rec := []string{
			m.ID,
			m.SenderID,
			m.AlignedText,
			m.Mood,
			strconv.Itoa(m.Intensity),
			strconv.FormatBool(m.Flags.Criticism),
			strconv.FormatBool(m.Flags.Defensiveness),
			strconv.FormatBool(m.Flags.Contempt),
			strconv.FormatBool(m.Flags.Stonewalling),
			strconv.Itoa(m.Flags.AngerLevel),
			repair,
			m.Timestamp.Format(time.RFC3339),
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
