package domain

import "strings"

// FixTemplate pairs a known issue description with its recommended
// remediation. IssuePattern is matched as a substring so tickets with
// extra context around the canonical description still match.
type FixTemplate struct {
	Key          string
	IssuePattern string
	Fix          string
}

// NoFixAvailable is assigned when no catalog entry matches an issue.
const NoFixAvailable = "No recommended fix available."

// FixCatalog is the fixed set of remediation templates. Order matters:
// the first matching entry wins.
var FixCatalog = []FixTemplate{
	{
		Key:          "restart_ehr",
		IssuePattern: "The electronic health record system is experiencing intermittent outages.",
		Fix:          "Restart the EHR server, clear caches, and check network load.",
	},
	{
		Key:          "verify_devices",
		IssuePattern: "Patient monitoring devices are not syncing with the central server.",
		Fix:          "Verify device configurations and network connectivity; update firmware if needed.",
	},
	{
		Key:          "review_logs",
		IssuePattern: "Scheduled maintenance on the radiology imaging system has failed.",
		Fix:          "Review system logs, reschedule maintenance, and test system responsiveness.",
	},
	{
		Key:          "optimize_wifi",
		IssuePattern: "Wi-Fi connectivity is unstable in the emergency department.",
		Fix:          "Optimize router placement, update firmware, and check for interference.",
	},
	{
		Key:          "investigate_security",
		IssuePattern: "Security alerts triggered due to unusual login patterns on the medical devices.",
		Fix:          "Investigate login logs, enforce strong authentication, and update security protocols.",
	},
	{
		Key:          "restart_printer",
		IssuePattern: "Printer in the nurse's station is offline and not processing orders.",
		Fix:          "Restart the printer, verify network settings, and check for driver updates.",
	},
	{
		Key:          "upgrade_network",
		IssuePattern: "The hospital intranet is slow, affecting access to patient records.",
		Fix:          "Analyze network bandwidth usage and consider hardware upgrades or traffic shaping.",
	},
	{
		Key:          "rollback_update",
		IssuePattern: "Software update for the lab information system caused unexpected errors.",
		Fix:          "Rollback the update, apply patches after thorough testing, and document changes.",
	},
	{
		Key:          "reconfigure_network",
		IssuePattern: "Network segmentation issues are impacting data transmission in the ICU.",
		Fix:          "Reconfigure network segments, test connectivity, and consult network logs.",
	},
	{
		Key:          "restart_vpn",
		IssuePattern: "Remote access to the hospital's IT portal is not functioning properly.",
		Fix:          "Restart VPN services, review remote access policies, and verify firewall rules.",
	},
}

// MatchFix returns the first catalog entry whose pattern occurs inside
// the issue text.
func MatchFix(issue string) (FixTemplate, bool) {
	for _, tmpl := range FixCatalog {
		if strings.Contains(issue, tmpl.IssuePattern) {
			return tmpl, true
		}
	}
	return FixTemplate{}, false
}

// FixByKey looks up a catalog entry by its key.
func FixByKey(key string) (FixTemplate, bool) {
	for _, tmpl := range FixCatalog {
		if tmpl.Key == key {
			return tmpl, true
		}
	}
	return FixTemplate{}, false
}
