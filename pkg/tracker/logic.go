// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package tracker

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Settle drops reservations older than lease.
func Settle(rec Record, now time.Time, lease time.Duration) Record {
	if rec.Pending > 0 && now.Sub(rec.PendingAt) >= lease {
		logrus.Warnf("dropping %d abandoned reservation(s) from %v", rec.Pending, rec.PendingAt)
		rec.Pending = 0
		rec.PendingAt = time.Time{}
	}
	return rec
}

// Eligible decides whether a rule may execute given its record.
// In-flight reservations count towards the cap and start a cooldown.
func Eligible(rec Record, limits Limits, now time.Time) bool {
	if limits.MaxExecutions > 0 && rec.ExecutionCount+rec.Pending >= limits.MaxExecutions {
		logrus.Debugf("execution cap reached: %d executed, %d pending, max %d",
			rec.ExecutionCount, rec.Pending, limits.MaxExecutions)
		return false
	}

	if limits.Cooldown > 0 {
		if !rec.LastExecutedAt.IsZero() && now.Sub(rec.LastExecutedAt) < limits.Cooldown {
			logrus.Debugf("still in cooldown for %v", limits.Cooldown-now.Sub(rec.LastExecutedAt))
			return false
		}
		if rec.Pending > 0 && now.Sub(rec.PendingAt) < limits.Cooldown {
			logrus.Debugf("execution in flight since %v", rec.PendingAt)
			return false
		}
	}

	return true
}

// Reserved returns rec with one more pending slot taken at now.
func Reserved(rec Record, now time.Time) Record {
	rec.Pending++
	if now.After(rec.PendingAt) {
		rec.PendingAt = now
	}
	return rec
}

// Recorded returns rec after an attempted execution at now.
func Recorded(rec Record, now time.Time) Record {
	rec.ExecutionCount++
	if now.After(rec.LastExecutedAt) {
		rec.LastExecutedAt = now
	}
	if rec.Pending > 0 {
		rec.Pending--
	}
	if rec.Pending == 0 {
		rec.PendingAt = time.Time{}
	}
	return rec
}
