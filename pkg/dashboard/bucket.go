package dashboard

// AgeBucket is one of the fixed inclusive age ranges used for charting.
type AgeBucket int

const (
	NoBucket AgeBucket = iota - 1
	Bucket0to2
	Bucket3to5
	Bucket6to12
	Bucket13to17
	Bucket18to24
	Bucket25to39
	Bucket40to59
	Bucket60Plus
)

type bucketRange struct {
	label  string
	lo, hi int
}

// bucketRanges are in ascending order; the last one has no upper bound.
var bucketRanges = []bucketRange{
	{"0-2", 0, 2},
	{"3-5", 3, 5},
	{"6-12", 6, 12},
	{"13-17", 13, 17},
	{"18-24", 18, 24},
	{"25-39", 25, 39},
	{"40-59", 40, 59},
	{"60+", 60, -1},
}

// Buckets returns all buckets in ascending order.
func Buckets() []AgeBucket {
	res := make([]AgeBucket, len(bucketRanges))
	for i := range bucketRanges {
		res[i] = AgeBucket(i)
	}
	return res
}

// BucketFor returns the first bucket containing age, or NoBucket for
// negative ages.
func BucketFor(age int) AgeBucket {
	for i, r := range bucketRanges {
		if age >= r.lo && (r.hi < 0 || age <= r.hi) {
			return AgeBucket(i)
		}
	}
	return NoBucket
}

// String returns the bucket label, e.g. "25-39".
func (b AgeBucket) String() string {
	if b < 0 || int(b) >= len(bucketRanges) {
		return ""
	}
	return bucketRanges[b].label
}

// MarshalText writes the label.
func (b AgeBucket) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}
