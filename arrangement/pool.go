package arrangement

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/remeh/sizedwaitgroup"
)

// Job is one arrangement of a song package.
type Job struct {
	Attributes *Attributes
	XMLPath    string
	Options    Options
}

// JobsFor loads the given manifests and pairs each with the arrangement file
// of the same base name in xmlDir, or next to the manifest when xmlDir is
// empty. A manifest must describe exactly one arrangement.
func JobsFor(manifests []string, xmlDir string, opts Options) ([]Job, error) {
	var jobs []Job
	for _, path := range manifests {
		attrs, err := LoadManifest(path)
		if err != nil {
			return nil, err
		}
		if len(attrs) != 1 {
			return nil, fmt.Errorf("manifest %v describes %d arrangements, expected 1", path, len(attrs))
		}
		dir := xmlDir
		if dir == "" {
			dir = filepath.Dir(path)
		}
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		jobs = append(jobs, Job{
			Attributes: attrs[0],
			XMLPath:    filepath.Join(dir, base+".xml"),
			Options:    opts,
		})
	}
	return jobs, nil
}

// Result is the outcome of a Job. Exactly one of Arrangement and Err is set.
type Result struct {
	Job         Job
	Arrangement *Arrangement
	Err         error
}

// BuildAll builds every job with at most workers builds running at once, or
// one per CPU when workers is not positive. A failing job does not stop the
// others. Results are returned in job order.
//
// Jobs must not share an arrangement file.
func (b *Builder) BuildAll(jobs []Job, workers int) []Result {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	results := make([]Result, len(jobs))
	wg := sizedwaitgroup.New(workers)
	for i, job := range jobs {
		wg.Add()
		go func(i int, job Job) {
			defer wg.Done()
			arr, err := b.Build(job.Attributes, job.XMLPath, job.Options)
			results[i] = Result{Job: job, Arrangement: arr, Err: err}
		}(i, job)
	}
	wg.Wait()
	return results
}
