package task

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"

	Aws "github.com/aws/aws-sdk-go/aws"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/gifkit/BackgroundRemover/src/aws"
	"github.com/gifkit/BackgroundRemover/src/containers"
	gifc "github.com/gifkit/BackgroundRemover/src/containers/gif"
	"github.com/gifkit/BackgroundRemover/src/global"
	"github.com/gifkit/BackgroundRemover/src/image"
	"github.com/gifkit/BackgroundRemover/src/job"
	"github.com/gifkit/BackgroundRemover/src/remover"
)

var (
	ErrNoAwsConfigured = fmt.Errorf("s3 path given but aws is not configured")
	ErrBadOutput       = fmt.Errorf("output must be a local path or s3://bucket/key")
)

// Task runs one job through the pipeline: fetch, sniff, decode, remove the
// background, encode, publish. The encoded GIF is built fully in memory
// before anything touches the output location, so a failed encode never
// leaves a partial file behind.
type Task struct {
	id  uuid.UUID
	job job.Job
	log *logrus.Entry
}

func New(j job.Job) *Task {
	id, _ := uuid.NewRandom()
	if j.ID == "" {
		j.ID = id.String()
	}
	return &Task{
		id:  id,
		job: j,
		log: logrus.WithField("task", j.ID),
	}
}

func (t *Task) ID() uuid.UUID {
	return t.id
}

func (t *Task) Run(ctx global.Context) error {
	t.stage(StageFetch)
	data, err := t.fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	t.stage(StageDecode)
	imgType, err := containers.ToType(data)
	if err != nil {
		return err
	}

	if imgType != image.GIF {
		t.log.Warnf("%s is not a gif, but %s", t.job.Input, imgType)
	}

	img, err := containers.Decode(data, imgType)
	if err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}

	t.stage(StageRemove)
	remover.Remove(img, t.job.Threshold)

	t.stage(StageEncode)
	buf := bytes.Buffer{}
	if err := gifc.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode failed: %w", err)
	}

	t.stage(StagePublish)
	if err := t.publish(ctx, buf.Bytes()); err != nil {
		return fmt.Errorf("write failed: %w", err)
	}

	return nil
}

func (t *Task) stage(s Stage) {
	t.log.Debug("stage: ", s)
}

func (t *Task) fetch(ctx global.Context) ([]byte, error) {
	switch job.ProviderOf(t.job.Input) {
	case job.AwsProvider:
		if ctx.Instances().AwsS3 == nil {
			return nil, ErrNoAwsConfigured
		}

		bucket, key, err := job.SplitS3(t.job.Input)
		if err != nil {
			return nil, err
		}

		buf := Aws.NewWriteAtBuffer([]byte{})
		if err := ctx.Instances().AwsS3.DownloadFile(ctx, bucket, key, buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case job.HttpProvider:
		return t.download(ctx)
	default:
		return os.ReadFile(t.job.Input)
	}
}

func (t *Task) download(ctx global.Context) (data []byte, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.job.Input, nil)
	if err != nil {
		return nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		err = multierror.Append(err, resp.Body.Close()).ErrorOrNil()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	return io.ReadAll(resp.Body)
}

func (t *Task) publish(ctx global.Context, data []byte) error {
	switch job.ProviderOf(t.job.Output) {
	case job.AwsProvider:
		if ctx.Instances().AwsS3 == nil {
			return ErrNoAwsConfigured
		}

		bucket, key, err := job.SplitS3(t.job.Output)
		if err != nil {
			return err
		}

		return ctx.Instances().AwsS3.UploadFile(
			ctx,
			bucket,
			key,
			bytes.NewReader(data),
			Aws.String("image/gif"),
			aws.AclPublicRead,
			aws.DefaultCacheControl,
		)
	case job.HttpProvider:
		return ErrBadOutput
	default:
		if dir := path.Dir(t.job.Output); dir != "." {
			if err := os.MkdirAll(dir, 0700); err != nil {
				return err
			}
		}
		return os.WriteFile(t.job.Output, data, 0600)
	}
}
