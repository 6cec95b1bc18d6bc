package sqlinline

const QInsertActivity = `--sql 4f4ed4b9-578f-4288-940f-1832c4294d60
insert into activities(type, user_id, collective_id, transaction_id, data, created_at)
values ($1, $2, $3, $4, coalesce($5::jsonb, '{}'::jsonb), now())
returning id, created_at;
`
