// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package nomination

import (
	"fmt"
	"strconv"
	"strings"
)

type Question struct {
	Key   string
	Label string
}

// Questions is the fixed ballot, in submission order.
var Questions = []Question{
	{Key: "q1", Label: "1) Who is the biggest foodie?"},
	{Key: "q2", Label: "2) Best dressing sense?"},
	{Key: "q3", Label: "3) Who cracks the funniest jokes?"},
	{Key: "q4", Label: "4) Most likely to be late?"},
	{Key: "q5", Label: "5) Best at office pranks?"},
	{Key: "q6", Label: "6) Who is the morning person?"},
	{Key: "q7", Label: "7) Most likely to win in karaoke?"},
	{Key: "q8", Label: "8) Who is the coffee addict?"},
	{Key: "q9", Label: "9) Most organized desk?"},
	{Key: "q10", Label: "10) Who is the office superstar?"},
}

// QuestionNumber parses the numeric suffix of a key such as "q7".
func QuestionNumber(key string) (int, error) {
	if !strings.HasPrefix(key, "q") {
		return 0, fmt.Errorf("invalid question key %q", key)
	}
	n, err := strconv.Atoi(key[1:])
	if err != nil || n < 1 || n > len(Questions) {
		return 0, fmt.Errorf("invalid question key %q", key)
	}
	return n, nil
}

// IsQuestionKey reports whether key names one of Questions.
func IsQuestionKey(key string) bool {
	n, err := QuestionNumber(key)
	return err == nil && Questions[n-1].Key == key
}
