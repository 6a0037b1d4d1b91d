package ais

// Namespace qualifies a bucket name within a provider.
type Namespace struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
}

// Bck is a fully qualified bucket identity. It shows up in list-buckets
// responses and names copy/transform destinations.
type Bck struct {
	Name      string     `json:"name"`
	Provider  Provider   `json:"provider,omitempty"`
	Namespace *Namespace `json:"namespace,omitempty"`
}

// ActionMsg is the request body for bucket-level actions. Value is omitted
// entirely for actions that take no parameters.
type ActionMsg struct {
	Action string `json:"action"`
	Value  any    `json:"value,omitempty"`
}

// ListObjectsMsg is the value of the list action. Every field is sent
// verbatim, zero values included; UUID and ContinuationToken address a page
// within a listing session.
type ListObjectsMsg struct {
	Prefix            string `json:"prefix"`
	PageSize          int    `json:"pagesize"`
	UUID              string `json:"uuid"`
	Props             string `json:"props"`
	ContinuationToken string `json:"continuation_token"`
}

// CopyBckMsg is the value of the copy-bck action.
type CopyBckMsg struct {
	Prefix string `json:"prefix"`
	DryRun bool   `json:"dry_run"`
	Force  bool   `json:"force"`
}

// TransformBckMsg is the value of the etl-bck action. ID names the ETL and
// is filled in by Transform; Ext maps source to destination extensions and
// stays off the wire when empty.
type TransformBckMsg struct {
	ID     string            `json:"id"`
	Prefix string            `json:"prefix"`
	Force  bool              `json:"force"`
	DryRun bool              `json:"dry_run"`
	Ext    map[string]string `json:"ext,omitempty"`
}

// BucketEntry flag layout: the low bits carry the entry status, the bit
// above them marks objects cached on the cluster.
const (
	entryStatusBits = 5
	entryStatusMask = (1 << entryStatusBits) - 1
	entryIsCached   = 1 << (entryStatusBits + 1)
)

// BucketEntry describes one object in a listing page.
type BucketEntry struct {
	Name      string `json:"name"`
	Size      int64  `json:"size,omitempty"`
	Checksum  string `json:"checksum,omitempty"`
	Atime     string `json:"atime,omitempty"`
	Version   string `json:"version,omitempty"`
	TargetURL string `json:"target_url,omitempty"`
	Copies    int16  `json:"copies,omitempty"`
	Flags     uint16 `json:"flags,omitempty"`
}

// IsOK reports whether the entry's status bits are clear.
func (e *BucketEntry) IsOK() bool { return e.Flags&entryStatusMask == 0 }

// IsCached reports whether the object has a copy on the cluster, as opposed
// to existing only in its remote backend.
func (e *BucketEntry) IsCached() bool { return e.Flags&entryIsCached != 0 }

// BucketList is one page of a bucket listing. A non-empty ContinuationToken
// means more pages follow; UUID identifies the listing session and must be
// echoed when requesting them.
type BucketList struct {
	UUID              string         `json:"uuid"`
	Entries           []*BucketEntry `json:"entries"`
	ContinuationToken string         `json:"continuation_token"`
	Flags             uint32         `json:"flags"`
}

// JobStatus is the cluster's view of an asynchronous job.
type JobStatus struct {
	UUID    string `json:"uuid"`
	ErrMsg  string `json:"err"`
	EndTime int64  `json:"end_time"`
	Aborted bool   `json:"aborted"`
}

// Finished reports whether the job has stopped running.
func (s *JobStatus) Finished() bool { return s.EndTime != 0 }

// jobQueryMsg is the value sent when querying job state.
type jobQueryMsg struct {
	ID         string `json:"id"`
	Kind       string `json:"kind"`
	Node       string `json:"node"`
	ShowActive bool   `json:"show_active"`
}
