package main

import "time"

// timeRound keeps elapsed durations readable in command output.
const timeRound = time.Second

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
