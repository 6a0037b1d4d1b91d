package ais

// Provider identifies the backend that owns a bucket.
type Provider string

// Backend providers understood by the cluster.
const (
	ProviderAIS    Provider = "ais"
	ProviderAmazon Provider = "aws"
	ProviderGoogle Provider = "gcp"
	ProviderAzure  Provider = "azure"
	ProviderHDFS   Provider = "hdfs"
	ProviderHTTP   Provider = "ht"
)

// IsAIS reports whether the provider is the native AIS backend.
func (p Provider) IsAIS() bool { return p == ProviderAIS }

// IsRemote reports whether the provider is a remote backend.
func (p Provider) IsRemote() bool { return !p.IsAIS() }

// Bucket actions dispatched through the buckets endpoint.
const (
	actCreateBck      = "create-bck"
	actDestroyBck     = "destroy-bck"
	actMoveBck        = "move-bck"
	actEvictRemoteBck = "evict-remote-bck"
	actCopyBck        = "copy-bck"
	actETLBck         = "etl-bck"
	actList           = "list"
)

// Query parameter keys.
const (
	qparamProvider  = "provider"
	qparamBucketTo  = "bck_to"
	qparamKeepBckMD = "keep_md"
	qparamWhat      = "what"
)

// URL path roots under the /v1 API prefix.
const (
	pathBuckets = "buckets"
	pathObjects = "objects"
	pathCluster = "cluster"
	pathHealth  = "health"
)

const whatJobStatus = "status"

// Object property headers set by the cluster.
const (
	headerChecksumType = "Ais-Checksum-Type"
	headerChecksumVal  = "Ais-Checksum-Value"
	headerObjAtime     = "Ais-Atime"
	headerObjVersion   = "Ais-Version"
)
