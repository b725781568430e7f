/*
Package pool provides the LocalWorkers implementation of the
deadpool.Pool interface.

A LocalWorkers pool spawns a fixed number of workers when it is
constructed. All of them claim jobs from one shared dispatch queue: a
claim is atomic, so a job is handed to exactly one worker, and the
queue lock is only held while taking a job off the queue, never while
the job runs.

Closing the pool is a one way transition. Submissions that arrive
after Close has begun are rejected with an error, jobs that were
already accepted are drained, and Close returns only after every
worker has exited.

A job that panics is recovered by its worker, which logs the failure,
records it for Close to return, and goes on to claim the next job.
The pool therefore never loses a worker to a failing job.
*/
package pool

// this file is intentional documentation only.
