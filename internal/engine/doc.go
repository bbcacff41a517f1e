package engine

// Package engine is the boundary to the external extraction/download library.
// The yt-dlp backend drives the yt-dlp executable through
// github.com/lrstanley/go-ytdlp; the native backend lists playlists with
// github.com/ytget/ytdlp/v2 without spawning a process. Router picks a backend
// per call.
