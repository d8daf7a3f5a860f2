// Package report turns a test record into improvement tips.
package report

import "netpulse/internal/history"

// Threshold values below/above which the corresponding advice applies.
const (
	lowDownloadMbps   = 10
	lowUploadMbps     = 5
	highPingMs        = 50
	lowStabilityScore = 70
)

var (
	downloadTips = []string{
		"- Your download speed is quite low. Consider upgrading your internet plan.",
		"- Connect to your router using an Ethernet cable instead of Wi-Fi for better speeds.",
	}
	uploadTips = []string{
		"- Your upload speed is low, which may affect video calls and file uploads.",
		"- Close background applications that might be uploading data.",
	}
	pingTips = []string{
		"- Your ping is high, which may cause lag in online games and video calls.",
		"- Connect to a server that's geographically closer to you if possible.",
		"- Reduce the number of devices connected to your network.",
	}
	stabilityTips = []string{
		"- Your connection stability is not optimal, which may cause intermittent issues.",
		"- Check for interference from other electronic devices.",
		"- Update your router's firmware or consider replacing an old router.",
		"- Position your router in a central location, away from walls and obstructions.",
	}
	generalTips = []string{
		"- Restart your router and modem if you haven't done so recently.",
		"- Check for malware or background processes that might be using your bandwidth.",
		"- Consider using a wired connection for critical activities like gaming or video conferencing.",
	}
)

// Tips returns advisory lines for a record. Rules are evaluated in fixed
// order (download, upload, ping, stability) and the general block is always
// appended last.
func Tips(rec history.Record) []string {
	tips := []string{"Tips for improving your internet speed:"}

	if rec.DownloadMbps < lowDownloadMbps {
		tips = append(tips, downloadTips...)
	}
	if rec.UploadMbps < lowUploadMbps {
		tips = append(tips, uploadTips...)
	}
	if rec.PingMs > highPingMs {
		tips = append(tips, pingTips...)
	}
	if rec.StabilityScore < lowStabilityScore {
		tips = append(tips, stabilityTips...)
	}

	return append(tips, generalTips...)
}
