// Package publish exports the site as a set of static files and ships
// them to a hosting destination.
//
// Snapshot renders the page without a CSRF token, which leaves the
// document static: the thin client loads but finds no session meta tag
// and stays idle. The snapshot bundles the rendered HTML, the client
// script at its served path, and everything under the static asset
// directory, so the published tree mirrors the URLs the live server
// exposes.
//
// Two publishers are included. DirPublisher writes to a local
// directory, for rsync-style hosting or a CDN sync step:
//
//	items, err := publish.Snapshot(publish.SnapshotConfig{Site: s})
//	if err != nil {
//	    return err
//	}
//	pub, err := publish.NewDirPublisher("./dist", logger)
//	if err != nil {
//	    return err
//	}
//	return pub.Publish(ctx, items)
//
// S3Publisher uploads to a bucket and prunes objects under its prefix
// that are no longer part of the site:
//
//	pub, err := publish.NewS3PublisherFromEnv("my-bucket", "site", "us-east-1", logger)
//
// Both publishers own their destination: anything there that the
// current snapshot does not contain is removed.
package publish
