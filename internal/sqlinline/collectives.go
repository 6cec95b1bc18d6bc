package sqlinline

const QGetCollective = `--sql 6b255f5f-719e-4c2e-b26a-2079a6de9f8d
select id, slug, name, image, currency, host_id, created_at
from collectives
where id = $1;
`

const QGetHost = `--sql e81b8e0d-0004-44d3-bab6-b8aad7de35a1
select id, slug, name, currency
from collectives
where id = $1;
`
