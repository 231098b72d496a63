package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/gophmedia/internal/client/mediautil"
	"github.com/dmitrijs2005/gophmedia/internal/client/models"
	"github.com/dmitrijs2005/gophmedia/internal/cryptox"
	"github.com/dmitrijs2005/gophmedia/internal/logging"
	"github.com/dmitrijs2005/gophmedia/internal/netx"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	downloadURL = netx.Download
)

// objectAPI is the subset of *s3.Client used by S3Client.
type objectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

type presignAPI interface {
	PresignGetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3ClientConfig configures S3Client.
type S3ClientConfig struct {
	Bucket        string
	Region        string
	BaseEndpoint  string
	AccessKey     string
	SecretKey     string
	PresignExpiry time.Duration
	// MaxDownload caps the size of content fetched for URL uploads.
	MaxDownload int64
	Timeout     time.Duration
}

// S3Client implements MediaClient on top of S3-compatible object storage.
//
// Every record is kept as a JSON sidecar at sites/{site}/meta/{id}.json and
// its content at sites/{site}/media/{id}/{file}. URLs handed out are
// presigned GET URLs, regenerated on every read.
type S3Client struct {
	api     objectAPI
	presign presignAPI
	http    *resty.Client
	cfg     S3ClientConfig
	log     logging.Logger
	now     func() time.Time
	newID   func() string
}

var (
	_ MediaClient = (*S3Client)(nil)
	_ Pinger      = (*S3Client)(nil)
)

// NewS3Client builds the AWS SDK client for cfg. Static credentials are used
// when AccessKey is set, otherwise the default credential chain applies.
func NewS3Client(ctx context.Context, cfg S3ClientConfig, log logging.Logger) (*S3Client, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	api := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return newS3Client(api, s3.NewPresignClient(api), cfg, log), nil
}

func newS3Client(api objectAPI, presign presignAPI, cfg S3ClientConfig, log logging.Logger) *S3Client {
	if log == nil {
		log = logging.NopLogger{}
	}
	if cfg.PresignExpiry <= 0 {
		cfg.PresignExpiry = 15 * time.Minute
	}

	h := resty.New()
	if cfg.Timeout > 0 {
		h.SetTimeout(cfg.Timeout)
	}

	return &S3Client{
		api:     api,
		presign: presign,
		http:    h,
		cfg:     cfg,
		log:     log.With("component", "s3-client"),
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// sidecar is the stored form of a record.
type sidecar struct {
	Record   models.MediaRecord `json:"record"`
	Key      string             `json:"key"`
	Checksum string             `json:"checksum"`
}

// maxIDMillis bounds the millisecond clock folded into record IDs.
const maxIDMillis = 9_999_999_999_999

// recordID prefixes suffix with the inverted creation time. S3 lists keys in
// lexical order, so sidecars of newer records come first on every page.
func recordID(created time.Time, suffix string) string {
	return fmt.Sprintf("%013d-%s", maxIDMillis-created.UnixMilli(), suffix)
}

func siteKey(siteID int64) string {
	return "sites/" + strconv.FormatInt(siteID, 10)
}

func metaPrefix(siteID int64) string {
	return siteKey(siteID) + "/meta/"
}

func metaKey(siteID int64, id string) string {
	return metaPrefix(siteID) + id + ".json"
}

func contentKey(siteID int64, id, fileName string) string {
	return siteKey(siteID) + "/media/" + id + "/" + path.Base(fileName)
}

func (c *S3Client) GetMedia(ctx context.Context, siteID int64, itemID string) (*models.MediaRecord, error) {
	sc, err := c.readSidecar(ctx, metaKey(siteID, itemID))
	if err != nil {
		return nil, err
	}
	rec := c.withURL(ctx, sc)
	return &rec, nil
}

// ListMedia pages through the sidecars of a site, newest first across pages.
// PageHandle is the S3 continuation token; filters apply within the page, so
// a filtered page may hold fewer than Number records.
func (c *S3Client) ListMedia(ctx context.Context, siteID int64, query models.Query) (*models.MediaList, error) {
	in := &s3.ListObjectsV2Input{
		Bucket: aws.String(c.cfg.Bucket),
		Prefix: aws.String(metaPrefix(siteID)),
	}
	if query.Number > 0 {
		in.MaxKeys = aws.Int32(int32(query.Number))
	}
	if query.PageHandle != "" {
		in.ContinuationToken = aws.String(query.PageHandle)
	}

	out, err := c.api.ListObjectsV2(ctx, in)
	if err != nil {
		return nil, mapS3Error(err)
	}

	list := &models.MediaList{Media: []models.MediaRecord{}}
	for _, obj := range out.Contents {
		sc, err := c.readSidecar(ctx, aws.ToString(obj.Key))
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if !matches(sc.Record, query) {
			continue
		}
		list.Media = append(list.Media, c.withURL(ctx, sc))
	}

	sort.SliceStable(list.Media, func(i, j int) bool {
		return list.Media[i].Date.After(list.Media[j].Date)
	})

	list.Found = len(list.Media)
	if aws.ToBool(out.IsTruncated) {
		list.NextPage = aws.ToString(out.NextContinuationToken)
	}
	return list, nil
}

func (c *S3Client) AddMediaURLs(ctx context.Context, siteID int64, payload models.UploadPayload) (*models.MediaList, error) {
	if payload.URL == "" {
		return nil, ErrNoContent
	}

	data, contentType, err := downloadURL(ctx, c.http, payload.URL, c.cfg.MaxDownload)
	if err != nil {
		return nil, err
	}

	rec, err := c.store(ctx, siteID, mediautil.BaseName(payload.URL), models.Blob{Data: data, Type: contentType}, payload)
	if err != nil {
		return nil, err
	}
	return &models.MediaList{Media: []models.MediaRecord{rec}, Found: 1}, nil
}

func (c *S3Client) AddMediaFiles(ctx context.Context, siteID int64, payload models.UploadPayload) (*models.MediaList, error) {
	if payload.File == nil || payload.File.Contents == nil {
		return nil, ErrNoContent
	}

	name, _ := fileMeta(*payload.File)
	rec, err := c.store(ctx, siteID, name, *payload.File.Contents, payload)
	if err != nil {
		return nil, err
	}
	return &models.MediaList{Media: []models.MediaRecord{rec}, Found: 1}, nil
}

func (c *S3Client) store(ctx context.Context, siteID int64, fileName string, blob models.Blob, payload models.UploadPayload) (models.MediaRecord, error) {
	suffix := c.newID()
	date := c.now().UTC()
	id := recordID(date, suffix)
	rec := models.MediaRecord{
		ID:       id,
		Date:     date,
		ParentID: payload.ParentID,
		Title:    payload.Title,
	}
	if rec.Title == "" {
		rec.Title = strings.TrimSuffix(fileName, path.Ext(fileName))
	}

	sc := sidecar{Record: rec}
	if err := c.putContent(ctx, siteID, &sc, fileName, blob); err != nil {
		return models.MediaRecord{}, err
	}
	if err := c.writeSidecar(ctx, siteID, sc); err != nil {
		return models.MediaRecord{}, err
	}

	c.log.Debug(ctx, "media stored", "site", siteID, "id", id, "key", sc.Key, "size", blob.Size())
	return c.withURL(ctx, sc), nil
}

func (c *S3Client) UpdateMedia(ctx context.Context, siteID int64, itemID string, update models.MediaUpdate) (*models.MediaRecord, error) {
	sc, err := c.readSidecar(ctx, metaKey(siteID, itemID))
	if err != nil {
		return nil, err
	}

	update.ID = ""
	sc.Record = sc.Record.Apply(update)
	if err := c.writeSidecar(ctx, siteID, sc); err != nil {
		return nil, err
	}

	rec := c.withURL(ctx, sc)
	return &rec, nil
}

// EditMedia replaces the content of itemID with update.Media or, failing
// that, with the content fetched from update.MediaURL.
func (c *S3Client) EditMedia(ctx context.Context, siteID int64, itemID string, update models.MediaUpdate) (*models.MediaRecord, error) {
	sc, err := c.readSidecar(ctx, metaKey(siteID, itemID))
	if err != nil {
		return nil, err
	}

	var (
		fileName string
		blob     models.Blob
	)
	switch {
	case update.Media != nil && update.Media.Kind == models.FileKindURL:
		update.MediaURL = update.Media.URL
		update.Media = nil
	case update.Media != nil && update.Media.Contents != nil:
		fileName, _ = fileMeta(*update.Media)
		blob = *update.Media.Contents
	}
	if update.Media == nil && update.MediaURL != "" {
		data, contentType, err := downloadURL(ctx, c.http, update.MediaURL, c.cfg.MaxDownload)
		if err != nil {
			return nil, err
		}
		fileName = mediautil.BaseName(update.MediaURL)
		blob = models.Blob{Data: data, Type: contentType}
	}

	update.ID = ""
	sc.Record = sc.Record.Apply(update)

	if fileName != "" {
		oldKey := sc.Key
		if err := c.putContent(ctx, siteID, &sc, fileName, blob); err != nil {
			return nil, err
		}
		if oldKey != "" && oldKey != sc.Key {
			if err := c.deleteObject(ctx, oldKey); err != nil {
				c.log.Warn(ctx, "stale media object left behind", "key", oldKey, "error", err)
			}
		}
	}

	if err := c.writeSidecar(ctx, siteID, sc); err != nil {
		return nil, err
	}

	rec := c.withURL(ctx, sc)
	return &rec, nil
}

func (c *S3Client) DeleteMedia(ctx context.Context, siteID int64, itemID string) (*models.MediaRecord, error) {
	key := metaKey(siteID, itemID)
	sc, err := c.readSidecar(ctx, key)
	if err != nil {
		return nil, err
	}

	if sc.Key != "" {
		if err := c.deleteObject(ctx, sc.Key); err != nil {
			return nil, err
		}
	}
	if err := c.deleteObject(ctx, key); err != nil {
		return nil, err
	}

	rec := sc.Record
	rec.URL = ""
	return &rec, nil
}

func (c *S3Client) Ping(ctx context.Context) error {
	_, err := c.api.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(c.cfg.Bucket)})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (c *S3Client) putContent(ctx context.Context, siteID int64, sc *sidecar, fileName string, blob models.Blob) error {
	ext := mediautil.GetFileExtension(fileName)
	if ext == "" {
		ext = mediautil.GetBlobExtension(&blob)
		if ext != "" {
			fileName += "." + ext
		}
	}
	mimeType := mediautil.GetBlobMimeType(&blob)
	if blob.Type == "" {
		if t := mediautil.GetMimeType(fileName); t != "" {
			mimeType = t
		}
	}
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	key := contentKey(siteID, sc.Record.ID, fileName)
	_, err := c.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.cfg.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(blob.Data),
		ContentLength: aws.Int64(blob.Size()),
		ContentType:   aws.String(mimeType),
	})
	if err != nil {
		return mapS3Error(err)
	}

	sc.Key = key
	sc.Checksum = cryptox.Checksum(blob.Data)
	sc.Record.File = path.Base(fileName)
	sc.Record.Extension = ext
	sc.Record.MimeType = mimeType
	sc.Record.Size = blob.Size()
	sc.Record.GUID = "s3://" + c.cfg.Bucket + "/" + key
	return nil
}

func (c *S3Client) readSidecar(ctx context.Context, key string) (sidecar, error) {
	out, err := c.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return sidecar{}, mapS3Error(err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return sidecar{}, fmt.Errorf("read %s: %w", key, err)
	}

	var sc sidecar
	if err := json.Unmarshal(data, &sc); err != nil {
		return sidecar{}, fmt.Errorf("decode %s: %w", key, err)
	}
	return sc, nil
}

func (c *S3Client) writeSidecar(ctx context.Context, siteID int64, sc sidecar) error {
	rec := sc.Record
	rec.URL = ""
	sc.Record = rec

	data, err := json.Marshal(sc)
	if err != nil {
		return fmt.Errorf("encode sidecar: %w", err)
	}

	_, err = c.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.cfg.Bucket),
		Key:           aws.String(metaKey(siteID, rec.ID)),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("application/json"),
	})
	return mapS3Error(err)
}

func (c *S3Client) deleteObject(ctx context.Context, key string) error {
	_, err := c.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.cfg.Bucket),
		Key:    aws.String(key),
	})
	return mapS3Error(err)
}

// withURL returns the record with a fresh presigned URL for its content. A
// presign failure leaves URL empty.
func (c *S3Client) withURL(ctx context.Context, sc sidecar) models.MediaRecord {
	rec := sc.Record
	if sc.Key == "" {
		return rec
	}

	req, err := c.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.cfg.Bucket),
		Key:    aws.String(sc.Key),
	}, s3.WithPresignExpires(c.cfg.PresignExpiry))
	if err != nil {
		c.log.Warn(ctx, "presign failed", "key", sc.Key, "error", err)
		return rec
	}
	rec.URL = req.URL
	return rec
}

func matches(rec models.MediaRecord, q models.Query) bool {
	if q.PostID != 0 && rec.ParentID != q.PostID {
		return false
	}
	if q.MimeType != "" && !strings.HasPrefix(rec.MimeType, q.MimeType) {
		return false
	}
	if q.Search != "" {
		s := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(rec.Title), s) && !strings.Contains(strings.ToLower(rec.File), s) {
			return false
		}
	}
	return true
}

func mapS3Error(err error) error {
	if err == nil {
		return nil
	}

	var noKey *types.NoSuchKey
	var notFound *types.NotFound
	if errors.As(err, &noKey) || errors.As(err, &notFound) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() == "AccessDenied" {
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
