// Package haveup publishes local files to a remote location and reports
// the public links they can be downloaded from.
//
// For every file the Publisher derives a target name (optionally the SHA-1 of
// the basename, see TargetName), uploads checksum sidecars when requested,
// transfers the file and records its download URL. Files are handled one
// after another; a failing file is skipped and the run carries on.
//
// # Key Components
//
//   - Options: settings resolved from a profile and command line overrides
//   - Publisher: drives the per-file pipeline and builds the Report
//   - ChecksumPublisher: computes digests and uploads "{file}.{alg}sum" sidecars
//   - LinkSink: keeps the ordered link list and forwards it to a SideChannel
//
// Transports, digesters and side channels are interfaces; implementations
// live in the transport, digest and sidechannel packages.
//
// # Example Usage
//
//	p, err := profile.Resolve("images", store)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	opts, err := haveup.NewOptions([]string{"cat.png"}, p, haveup.Overrides{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	publisher, err := haveup.NewPublisher(tr, haveup.WithDigester(digest.Native{}))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	report, err := publisher.Run(ctx, opts)
package haveup
