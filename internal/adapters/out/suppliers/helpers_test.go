package suppliers_test

import "time"

var testNow = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
