package info

// Package info fetches metadata for single videos and playlists in the
// background and normalizes it into display-ready MediaItemInfo values with
// de-duplicated video and audio quality options.
