// Package engine derives habit progress, day status, weekly quotas and
// streaks from a habit's raw history. Every function is pure and total:
// missing fields, unknown values and empty histories never cause an error,
// and nothing here mutates its inputs. All views (card strip, calendar,
// report heatmap, schedule locks) go through Classify so they agree.
package engine
