package cache

import "strings"

// GlobalKeyPrefix namespaces every key this service writes.
const GlobalKeyPrefix = "studion"

// quizSchemaVersion is bumped whenever the cached quiz JSON changes shape,
// so old entries are ignored instead of decoded into the new layout.
const quizSchemaVersion = "v1"

// Key joins parts under the global prefix: studion:part1:part2...
// Empty parts are skipped.
func Key(parts ...string) string {
	out := make([]string, 0, len(parts)+1)
	out = append(out, GlobalKeyPrefix)
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ":")
}

// QuizKey is the read-through key of a quiz used by the attempt engine.
func QuizKey(quizID string) string {
	return Key("attempt", "quiz", quizSchemaVersion, quizID)
}
