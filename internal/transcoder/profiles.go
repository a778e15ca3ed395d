package transcoder

// Profile is a named target output resolution. The set of profiles is
// fixed at deploy time; every job transcodes to the full set.
type Profile struct {
	// Label names the output directory for this variant, e.g. "720p".
	Label string
	// Size is the pixel dimensions as a WxH scale filter argument.
	Size string
	// Bandwidth is the approximate peak bitrate advertised in the
	// master playlist. It is not measured from the encoded output.
	Bandwidth int
}

// defaultProfiles is ordered by ascending quality; the master playlist
// lists variants in this order.
var defaultProfiles = []Profile{
	{Label: "120p", Size: "214x120", Bandwidth: 250_000},
	{Label: "360p", Size: "640x360", Bandwidth: 800_000},
	{Label: "720p", Size: "1280x720", Bandwidth: 2_500_000},
	{Label: "1080p", Size: "1920x1080", Bandwidth: 5_000_000},
}

// DefaultProfiles returns the fixed resolution ladder. The returned
// slice is a copy; callers may not mutate the configured set.
func DefaultProfiles() []Profile {
	profiles := make([]Profile, len(defaultProfiles))
	copy(profiles, defaultProfiles)
	return profiles
}

// Labels returns the labels of the given profiles in order, for metric
// label pre-population and logging.
func Labels(profiles []Profile) []string {
	labels := make([]string, len(profiles))
	for i, p := range profiles {
		labels[i] = p.Label
	}
	return labels
}
