package main

import "time"

const socketPath = "/connection/websocket"
const shutdownTimeout = 5 * time.Second

const exportExtension = ".jsonl"
const exportPrefix = "exports"
