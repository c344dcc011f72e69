/*
Package crawlsched implements the adaptive scheduler at the heart of a
focused (goal-directed) web crawler: a per-domain mutable priority queue
(DomainQueue), a domain-balancing meta-queue that multiplexes them
(BalancedScheduler), and supporting priority-conversion utilities.

The rest of a crawler - HTML cleaning, link extraction, fetching, storage
of crawled content, and machine-learning scoring - lives outside this
package; crawlsched only specifies the contracts it consumes (Response,
LinkExtractor) and exposes (Push, Pop, UpdateAllPriorities,
CloseQueue). See the goal, linkintake, htmllinks, console and cmd
subpackages for a reference implementation of the pieces around it.
*/
package crawlsched
