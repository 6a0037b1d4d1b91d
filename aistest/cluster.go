package aistest

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Cluster is an in-memory stand-in for a storage cluster gateway. It speaks
// the native bucket/object protocol over an in-process Fiber app, so tests
// exercise real HTTP handling without opening a socket.
type Cluster struct {
	app *fiber.App

	mu      sync.Mutex
	buckets map[string]*bucket
	jobs    map[string]time.Time
}

type bucket struct {
	provider string
	name     string
	objects  map[string]*object
}

type object struct {
	data        []byte
	contentType string
	checksum    string
	atime       time.Time
	version     int
}

// NewCluster returns a ready cluster with no buckets.
func NewCluster() *Cluster {
	c := &Cluster{
		buckets: make(map[string]*bucket),
		jobs:    make(map[string]time.Time),
	}

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	v1 := app.Group("/v1")
	v1.Get("/health", c.handleHealth)
	v1.Get("/cluster", c.handleCluster)
	v1.Get("/buckets", c.handleListBuckets)
	v1.Get("/buckets/:name", c.handleBucketList)
	v1.Post("/buckets/:name", c.handleBucketAction)
	v1.Delete("/buckets/:name", c.handleBucketDelete)
	v1.Head("/buckets/:name", c.handleBucketHead)
	v1.Put("/objects/:bucket/+", c.handleObjectPut)
	v1.Get("/objects/:bucket/+", c.handleObjectGet)
	v1.Head("/objects/:bucket/+", c.handleObjectHead)
	v1.Delete("/objects/:bucket/+", c.handleObjectDelete)

	c.app = app
	return c
}

// URL returns a synthetic base URL. The host is never resolved; Client
// routes every request into the app directly.
func (c *Cluster) URL() string { return "http://aistest" }

// Client returns an HTTP client wired straight into the cluster's handlers.
func (c *Cluster) Client() *http.Client {
	return &http.Client{
		Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			return c.app.Test(req, -1)
		}),
	}
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

// CreateBucket registers a bucket directly, bypassing the API.
func (c *Cluster) CreateBucket(provider, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.putBucket(provider, name)
}

// PutObject stores an object directly, creating the bucket if needed.
func (c *Cluster) PutObject(provider, bucketName, objName string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	bck := c.putBucket(provider, bucketName)
	bck.put(objName, data)
}

func (c *Cluster) putBucket(provider, name string) *bucket {
	key := bucketKey(provider, name)
	if bck, ok := c.buckets[key]; ok {
		return bck
	}
	bck := &bucket{provider: provider, name: name, objects: make(map[string]*object)}
	c.buckets[key] = bck
	return bck
}

func (b *bucket) put(name string, data []byte) {
	data = append([]byte(nil), data...)
	sum := md5.Sum(data)
	prev := b.objects[name]
	version := 1
	if prev != nil {
		version = prev.version + 1
	}
	b.objects[name] = &object{
		data:        data,
		contentType: mimetype.Detect(data).String(),
		checksum:    hex.EncodeToString(sum[:]),
		atime:       time.Now(),
		version:     version,
	}
}

func bucketKey(provider, name string) string { return provider + "://" + name }

func provider(fc *fiber.Ctx) string {
	p := fc.Query("provider")
	if p == "" {
		p = "ais"
	}
	return p
}

// Wire messages. Kept local so the double stays independent of the SDK.
type actionMsg struct {
	Action string          `json:"action"`
	Value  json.RawMessage `json:"value"`
}

type listMsg struct {
	Prefix            string `json:"prefix"`
	PageSize          int    `json:"pagesize"`
	UUID              string `json:"uuid"`
	Props             string `json:"props"`
	ContinuationToken string `json:"continuation_token"`
}

type copyMsg struct {
	Prefix string `json:"prefix"`
	DryRun bool   `json:"dry_run"`
	Force  bool   `json:"force"`
}

type etlMsg struct {
	ID     string            `json:"id"`
	Prefix string            `json:"prefix"`
	Force  bool              `json:"force"`
	DryRun bool              `json:"dry_run"`
	Ext    map[string]string `json:"ext"`
}

type entryMsg struct {
	Name     string `json:"name"`
	Size     int64  `json:"size,omitempty"`
	Checksum string `json:"checksum,omitempty"`
	Atime    string `json:"atime,omitempty"`
	Version  string `json:"version,omitempty"`
}

type listPage struct {
	UUID              string      `json:"uuid"`
	Entries           []*entryMsg `json:"entries"`
	ContinuationToken string      `json:"continuation_token"`
	Flags             uint32      `json:"flags"`
}

type bckMsg struct {
	Name     string `json:"name"`
	Provider string `json:"provider,omitempty"`
}

type jobStatusMsg struct {
	UUID    string `json:"uuid"`
	ErrMsg  string `json:"err"`
	EndTime int64  `json:"end_time"`
	Aborted bool   `json:"aborted"`
}

func (c *Cluster) handleHealth(fc *fiber.Ctx) error {
	return fc.SendStatus(fiber.StatusOK)
}

func (c *Cluster) handleListBuckets(fc *fiber.Ctx) error {
	prov := fc.Query("provider")

	c.mu.Lock()
	defer c.mu.Unlock()

	bcks := []bckMsg{}
	for _, bck := range c.buckets {
		if prov != "" && bck.provider != prov {
			continue
		}
		bcks = append(bcks, bckMsg{Name: bck.name, Provider: bck.provider})
	}
	sort.Slice(bcks, func(i, j int) bool {
		if bcks[i].Provider != bcks[j].Provider {
			return bcks[i].Provider < bcks[j].Provider
		}
		return bcks[i].Name < bcks[j].Name
	})
	return fc.JSON(bcks)
}

func (c *Cluster) handleBucketAction(fc *fiber.Ctx) error {
	name := fc.Params("name")
	var msg actionMsg
	if err := json.Unmarshal(fc.Body(), &msg); err != nil {
		return fc.Status(fiber.StatusBadRequest).SendString("invalid action message")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	switch msg.Action {
	case "create-bck":
		key := bucketKey(provider(fc), name)
		if _, ok := c.buckets[key]; ok {
			return fc.Status(fiber.StatusConflict).SendString("bucket " + strconv.Quote(name) + " already exists")
		}
		c.putBucket(provider(fc), name)
		return fc.SendStatus(fiber.StatusOK)

	case "move-bck":
		src, ok := c.buckets[bucketKey(provider(fc), name)]
		if !ok {
			return bucketMissing(fc, name)
		}
		dstProv, dstName, ok := parseBckTo(fc.Query("bck_to"))
		if !ok {
			return fc.Status(fiber.StatusBadRequest).SendString("invalid bck_to")
		}
		delete(c.buckets, bucketKey(src.provider, src.name))
		src.provider, src.name = dstProv, dstName
		c.buckets[bucketKey(dstProv, dstName)] = src
		return fc.SendString(c.startJob())

	case "copy-bck":
		var value copyMsg
		_ = json.Unmarshal(msg.Value, &value)
		return c.copyLocked(fc, name, value.Prefix, value.DryRun, nil)

	case "etl-bck":
		var value etlMsg
		_ = json.Unmarshal(msg.Value, &value)
		return c.copyLocked(fc, name, value.Prefix, value.DryRun, value.Ext)

	default:
		return fc.Status(fiber.StatusBadRequest).SendString("unknown action " + strconv.Quote(msg.Action))
	}
}

// copyLocked materializes copy-bck and etl-bck. The caller holds c.mu.
func (c *Cluster) copyLocked(fc *fiber.Ctx, srcName, prefix string, dryRun bool, ext map[string]string) error {
	src, ok := c.buckets[bucketKey(provider(fc), srcName)]
	if !ok {
		return bucketMissing(fc, srcName)
	}
	dstProv, dstName, ok := parseBckTo(fc.Query("bck_to"))
	if !ok {
		return fc.Status(fiber.StatusBadRequest).SendString("invalid bck_to")
	}
	if !dryRun {
		dst := c.putBucket(dstProv, dstName)
		for objName, obj := range src.objects {
			if !strings.HasPrefix(objName, prefix) {
				continue
			}
			dst.put(mapExt(objName, ext), obj.data)
		}
	}
	return fc.SendString(c.startJob())
}

// mapExt rewrites the object's extension per the etl ext table.
func mapExt(name string, ext map[string]string) string {
	for from, to := range ext {
		if strings.HasSuffix(name, "."+from) {
			return strings.TrimSuffix(name, from) + to
		}
	}
	return name
}

func (c *Cluster) startJob() string {
	id := uuid.NewString()
	c.jobs[id] = time.Now()
	return id
}

func (c *Cluster) handleBucketDelete(fc *fiber.Ctx) error {
	name := fc.Params("name")
	var msg actionMsg
	if err := json.Unmarshal(fc.Body(), &msg); err != nil {
		return fc.Status(fiber.StatusBadRequest).SendString("invalid action message")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	key := bucketKey(provider(fc), name)
	bck, ok := c.buckets[key]
	if !ok {
		return bucketMissing(fc, name)
	}

	switch msg.Action {
	case "destroy-bck":
		delete(c.buckets, key)
		return fc.SendStatus(fiber.StatusOK)

	case "evict-remote-bck":
		bck.objects = make(map[string]*object)
		if fc.Query("keep_md") != "True" {
			delete(c.buckets, key)
		}
		return fc.SendStatus(fiber.StatusOK)

	default:
		return fc.Status(fiber.StatusBadRequest).SendString("unknown action " + strconv.Quote(msg.Action))
	}
}

func (c *Cluster) handleBucketHead(fc *fiber.Ctx) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	bck, ok := c.buckets[bucketKey(provider(fc), fc.Params("name"))]
	if !ok {
		return fc.SendStatus(fiber.StatusNotFound)
	}
	fc.Set("Ais-Provider", bck.provider)
	fc.Set("Ais-Bucket-Name", bck.name)
	// SendStatus would write a status-text body, clobbering the headers.
	return fc.Status(fiber.StatusOK).Send(nil)
}

func (c *Cluster) handleBucketList(fc *fiber.Ctx) error {
	name := fc.Params("name")
	var msg actionMsg
	if err := json.Unmarshal(fc.Body(), &msg); err != nil || msg.Action != "list" {
		return fc.Status(fiber.StatusBadRequest).SendString("expected a list action")
	}
	var value listMsg
	_ = json.Unmarshal(msg.Value, &value)

	c.mu.Lock()
	defer c.mu.Unlock()

	bck, ok := c.buckets[bucketKey(provider(fc), name)]
	if !ok {
		return bucketMissing(fc, name)
	}

	// Continuing a listing session requires the session's uuid.
	if value.ContinuationToken != "" && value.UUID == "" {
		return fc.Status(fiber.StatusBadRequest).SendString("continuation token without listing uuid")
	}

	names := make([]string, 0, len(bck.objects))
	for objName := range bck.objects {
		if strings.HasPrefix(objName, value.Prefix) && objName > value.ContinuationToken {
			names = append(names, objName)
		}
	}
	sort.Strings(names)

	pageSize := value.PageSize
	if pageSize <= 0 {
		pageSize = 1000
	}
	token := ""
	if len(names) > pageSize {
		names = names[:pageSize]
		token = names[len(names)-1]
	}

	sessionID := value.UUID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	page := listPage{UUID: sessionID, Entries: []*entryMsg{}, ContinuationToken: token}
	for _, objName := range names {
		obj := bck.objects[objName]
		page.Entries = append(page.Entries, &entryMsg{
			Name:     objName,
			Size:     int64(len(obj.data)),
			Checksum: obj.checksum,
			Atime:    obj.atime.Format(time.RFC3339),
			Version:  strconv.Itoa(obj.version),
		})
	}
	return fc.JSON(page)
}

func (c *Cluster) handleCluster(fc *fiber.Ctx) error {
	if fc.Query("what") != "status" {
		return fc.Status(fiber.StatusBadRequest).SendString("unsupported what=" + fc.Query("what"))
	}
	var query struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(fc.Body(), &query); err != nil {
		return fc.Status(fiber.StatusBadRequest).SendString("invalid job query")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	endTime, ok := c.jobs[query.ID]
	if !ok {
		return fc.Status(fiber.StatusNotFound).SendString("job " + strconv.Quote(query.ID) + " not found")
	}
	return fc.JSON(jobStatusMsg{UUID: query.ID, EndTime: endTime.UnixNano()})
}

func (c *Cluster) handleObjectPut(fc *fiber.Ctx) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	bck, ok := c.buckets[bucketKey(provider(fc), fc.Params("bucket"))]
	if !ok {
		return bucketMissing(fc, fc.Params("bucket"))
	}
	bck.put(fc.Params("+"), fc.Body())
	return fc.SendStatus(fiber.StatusOK)
}

func (c *Cluster) handleObjectGet(fc *fiber.Ctx) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	obj, err := c.findObject(fc)
	if err != nil {
		return err
	}
	setObjectHeaders(fc, obj)
	return fc.Send(obj.data)
}

func (c *Cluster) handleObjectHead(fc *fiber.Ctx) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	obj, err := c.findObject(fc)
	if err != nil {
		return err
	}
	setObjectHeaders(fc, obj)
	fc.Set("Content-Length", strconv.Itoa(len(obj.data)))
	return fc.Status(fiber.StatusOK).Send(nil)
}

func (c *Cluster) handleObjectDelete(fc *fiber.Ctx) error {
	name := fc.Params("+")

	c.mu.Lock()
	defer c.mu.Unlock()

	bck, ok := c.buckets[bucketKey(provider(fc), fc.Params("bucket"))]
	if !ok {
		return bucketMissing(fc, fc.Params("bucket"))
	}
	if _, ok := bck.objects[name]; !ok {
		return objectMissing(fc, name)
	}
	delete(bck.objects, name)
	return fc.SendStatus(fiber.StatusOK)
}

// findObject resolves the object addressed by the request. The caller holds
// c.mu.
func (c *Cluster) findObject(fc *fiber.Ctx) (*object, error) {
	bck, ok := c.buckets[bucketKey(provider(fc), fc.Params("bucket"))]
	if !ok {
		return nil, bucketMissing(fc, fc.Params("bucket"))
	}
	obj, ok := bck.objects[fc.Params("+")]
	if !ok {
		return nil, objectMissing(fc, fc.Params("+"))
	}
	return obj, nil
}

func setObjectHeaders(fc *fiber.Ctx, obj *object) {
	fc.Set(fiber.HeaderContentType, obj.contentType)
	fc.Set("Ais-Checksum-Type", "md5")
	fc.Set("Ais-Checksum-Value", obj.checksum)
	fc.Set("Ais-Atime", obj.atime.Format(time.RFC3339))
	fc.Set("Ais-Version", strconv.Itoa(obj.version))
}

func bucketMissing(fc *fiber.Ctx, name string) error {
	return fc.Status(fiber.StatusNotFound).SendString("bucket " + strconv.Quote(name) + " does not exist")
}

func objectMissing(fc *fiber.Ctx, name string) error {
	return fc.Status(fiber.StatusNotFound).SendString("object " + strconv.Quote(name) + " not found")
}

// parseBckTo splits the "<provider>/@#/<name>/" destination descriptor.
func parseBckTo(s string) (prov, name string, ok bool) {
	parts := strings.SplitN(s, "/@#/", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	prov = parts[0]
	name = strings.TrimSuffix(parts[1], "/")
	if prov == "" || name == "" {
		return "", "", false
	}
	return prov, name, true
}
