// Package logtail reads the tail of realmboard's own log file and decodes
// its JSON lines for display.
//
// Read keeps a ring buffer of the last maxLines lines so memory stays
// bounded regardless of file size:
//
//	lines, err := logtail.Read(path, 400)
//	if err != nil {
//		return err
//	}
//	for _, e := range logtail.ParseLines(lines) {
//		fmt.Println(e.Level, e.Message)
//	}
//
// Console-encoded or otherwise unparseable lines are passed through in
// Entry.Raw.
package logtail
