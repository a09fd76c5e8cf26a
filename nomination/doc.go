// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package nomination holds the ten award questions, the answer set and the
// submit rules: nothing is sent once submitted, nothing is sent while any
// answer is blank, and answers go out as [number, text] pairs in q1..q10 order.
package nomination
